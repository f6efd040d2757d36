// Package flow implements the pipeline operator-expression language:
// a tokenizer, recursive-descent parser, step validator, and a code
// compiler that turns an expression like
//
//	Fetch -> Enrich ->? Score || Audit
//
// into Go orchestration code for a generated pipeline's Execute method.
//
// Three operators compose named steps: "->" runs left then right, "->?"
// runs right only when left produced a result, and "||" runs both sides
// concurrently and waits for both. Parallel binds loosest, then
// sequence, then optional; parentheses override precedence.
package flow

import "fmt"

// TokenType classifies a lexeme in an operator expression.
type TokenType int

const (
	TokenEOF     TokenType = iota
	TokenIdent             // step name: [A-Za-z_][A-Za-z0-9_]*
	TokenSeq               // ->
	TokenOpt               // ->?
	TokenPar               // ||
	TokenLParen            // (
	TokenRParen            // )
	TokenIllegal           // any byte outside the grammar; rejected by the parser
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "identifier"
	case TokenSeq:
		return "'->'"
	case TokenOpt:
		return "'->?'"
	case TokenPar:
		return "'||'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenIllegal:
		return "illegal character"
	default:
		return "unknown"
	}
}

// Token is a single classified lexeme. Pos is the byte offset in the
// normalized expression, used for error messages.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d}", t.Type, t.Literal, t.Pos)
}
