package flow

import "fmt"

// ErrorKind is a machine-readable classification of expression errors.
// Callers branch on kinds via errors.As rather than matching message text.
type ErrorKind string

const (
	ErrEmptyExpression ErrorKind = "empty_expression"
	ErrUnexpectedToken ErrorKind = "unexpected_token"
	ErrUnexpectedEnd   ErrorKind = "unexpected_end"
	ErrTrailingTokens  ErrorKind = "trailing_tokens"
	ErrDuplicateStep   ErrorKind = "duplicate_step"
)

// ParseError reports a syntactic failure in an operator expression.
type ParseError struct {
	Kind ErrorKind
	Pos  int    // byte offset in the normalized expression
	Got  string // offending token text, if any
	Want string // expected token description, if any
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrEmptyExpression:
		return "empty pipeline expression"
	case ErrUnexpectedEnd:
		if e.Want != "" {
			return fmt.Sprintf("unexpected end of expression, expected %s", e.Want)
		}
		return "unexpected end of expression"
	case ErrTrailingTokens:
		return fmt.Sprintf("unexpected %q after end of expression at position %d", e.Got, e.Pos)
	default:
		if e.Want != "" {
			return fmt.Sprintf("unexpected %q at position %d, expected %s", e.Got, e.Pos, e.Want)
		}
		return fmt.Sprintf("unexpected %q at position %d", e.Got, e.Pos)
	}
}

// ValidationError reports a semantic failure in a parsed expression.
type ValidationError struct {
	Kind ErrorKind
	Step string // offending step name
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %q appears more than once in the pipeline expression", e.Step)
}
