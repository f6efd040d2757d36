package flow

// Parser consumes a token stream and builds the expression tree.
//
// Grammar, loosest binding first:
//
//	parallel := sequence ('||' sequence)*
//	sequence := optional ('->' optional)*
//	optional := primary ('->?' primary)*
//	primary  := IDENT | '(' parallel ')'
//
// All operators fold left-associatively.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses a raw operator expression.
func Parse(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-tokenized expression. The whole stream
// must be consumed; leftover tokens after a complete expression are a
// TrailingTokens error.
func ParseTokens(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Kind: ErrEmptyExpression}
	}
	p := &Parser{tokens: tokens}
	node, err := p.parseParallel()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, &ParseError{Kind: ErrTrailingTokens, Pos: tok.Pos, Got: tok.Literal}
	}
	return node, nil
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *Parser) parseParallel() (Node, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Type != TokenPar {
			return left, nil
		}
		p.pos++
		right, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		left = &ParNode{Left: left, Right: right}
	}
}

func (p *Parser) parseSequence() (Node, error) {
	left, err := p.parseOptional()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Type != TokenSeq {
			return left, nil
		}
		p.pos++
		right, err := p.parseOptional()
		if err != nil {
			return nil, err
		}
		left = &SeqNode{Left: left, Right: right}
	}
}

func (p *Parser) parseOptional() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Type != TokenOpt {
			return left, nil
		}
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &OptNode{Left: left, Right: right}
	}
}

func (p *Parser) parsePrimary() (Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, &ParseError{Kind: ErrUnexpectedEnd, Want: "step name or '('"}
	}
	switch tok.Type {
	case TokenIdent:
		return &StepNode{Name: tok.Literal}, nil
	case TokenLParen:
		inner, err := p.parseParallel()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok {
			return nil, &ParseError{Kind: ErrUnexpectedEnd, Want: "')'"}
		}
		if closing.Type != TokenRParen {
			return nil, &ParseError{Kind: ErrUnexpectedToken, Pos: closing.Pos, Got: closing.Literal, Want: "')'"}
		}
		return inner, nil
	default:
		return nil, &ParseError{Kind: ErrUnexpectedToken, Pos: tok.Pos, Got: tok.Literal, Want: "step name or '('"}
	}
}
