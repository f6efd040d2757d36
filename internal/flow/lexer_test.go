package flow

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "single step",
			input: "Fetch",
			want:  []TokenType{TokenIdent},
		},
		{
			name:  "sequence",
			input: "Fetch -> Enrich",
			want:  []TokenType{TokenIdent, TokenSeq, TokenIdent},
		},
		{
			name:  "optional binds as one token",
			input: "A ->? B",
			want:  []TokenType{TokenIdent, TokenOpt, TokenIdent},
		},
		{
			name:  "parallel",
			input: "A || B",
			want:  []TokenType{TokenIdent, TokenPar, TokenIdent},
		},
		{
			name:  "parens",
			input: "(A -> B) || C",
			want:  []TokenType{TokenLParen, TokenIdent, TokenSeq, TokenIdent, TokenRParen, TokenPar, TokenIdent},
		},
		{
			name:  "no whitespace",
			input: "A->B->?C||D",
			want:  []TokenType{TokenIdent, TokenSeq, TokenIdent, TokenOpt, TokenIdent, TokenPar, TokenIdent},
		},
		{
			name:  "unicode aliases",
			input: "A → B →? C ⇄ D",
			want:  []TokenType{TokenIdent, TokenSeq, TokenIdent, TokenOpt, TokenIdent, TokenPar, TokenIdent},
		},
		{
			name:  "underscore and digits in idents",
			input: "step_2 -> _internal",
			want:  []TokenType{TokenIdent, TokenSeq, TokenIdent},
		},
		{
			name:  "illegal byte is kept",
			input: "A @ B",
			want:  []TokenType{TokenIdent, TokenIllegal, TokenIdent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", tt.input, err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %d tokens", tt.input, tokens, len(tt.want))
			}
			for i, tok := range tokens {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d of %q: got %v, want %v", i, tt.input, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tokens, err := Tokenize("Fetch->?Score")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []string{"Fetch", "->?", "Score"}
	for i, lit := range want {
		if tokens[i].Literal != lit {
			t.Errorf("token %d: got literal %q, want %q", i, tokens[i].Literal, lit)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Tokenize(input)
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Kind != ErrEmptyExpression {
			t.Errorf("Tokenize(%q): got %v, want empty-expression error", input, err)
		}
	}
}
