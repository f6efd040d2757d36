package flow

import "strings"

// operatorAliases maps the Unicode operator glyphs accepted in
// expressions to their ASCII forms. The two-rune alias must be replaced
// before the single-rune arrow so "→?" does not decay to "->" + "?".
var operatorAliases = strings.NewReplacer(
	"→?", "->?",
	"→", "->",
	"⇄", "||",
)

// Lexer tokenizes a normalized operator expression byte by byte.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

// NewLexer creates a lexer for the given raw expression. Unicode
// operator aliases are normalized to ASCII before scanning.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: operatorAliases.Replace(input)}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input. Bytes that match no
// lexical class are returned as TokenIllegal rather than skipped, so
// every non-whitespace byte of the input is accounted for.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.pos
	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Pos: pos}
	case l.ch == '(':
		l.readChar()
		return Token{Type: TokenLParen, Literal: "(", Pos: pos}
	case l.ch == ')':
		l.readChar()
		return Token{Type: TokenRParen, Literal: ")", Pos: pos}
	case l.ch == '-' && l.peekChar() == '>':
		l.readChar() // consume '-'
		l.readChar() // consume '>'
		// Longest match first: "->?" is a strict extension of "->".
		if l.ch == '?' {
			l.readChar()
			return Token{Type: TokenOpt, Literal: "->?", Pos: pos}
		}
		return Token{Type: TokenSeq, Literal: "->", Pos: pos}
	case l.ch == '|' && l.peekChar() == '|':
		l.readChar()
		l.readChar()
		return Token{Type: TokenPar, Literal: "||", Pos: pos}
	case isIdentStart(l.ch):
		return Token{Type: TokenIdent, Literal: l.readIdent(), Pos: pos}
	default:
		tok := Token{Type: TokenIllegal, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok
	}
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// Tokenize scans the whole expression and returns its tokens (without
// the terminating EOF). An input with no tokens at all — empty or
// whitespace-only — fails with an EmptyExpression parse error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			break
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil, &ParseError{Kind: ErrEmptyExpression}
	}
	return tokens, nil
}
