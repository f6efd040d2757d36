package flow

import (
	"errors"
	"testing"
)

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string // canonical fully-parenthesized form
	}{
		{"Fetch", "Fetch"},
		{"A -> B", "(A -> B)"},
		{"A -> B -> C", "((A -> B) -> C)"},
		{"A ->? B ->? C", "((A ->? B) ->? C)"},
		{"A || B || C", "((A || B) || C)"},
		// Optional binds tighter than sequence, sequence tighter than parallel.
		{"A -> B ->? C", "(A -> (B ->? C))"},
		{"A ->? B -> C", "((A ->? B) -> C)"},
		{"A -> B || C", "((A -> B) || C)"},
		{"A || B -> C", "(A || (B -> C))"},
		{"A ->? B || C -> D", "((A ->? B) || (C -> D))"},
		// Parentheses override precedence.
		{"A -> (B || C)", "(A -> (B || C))"},
		{"(A || B) -> C", "((A || B) -> C)"},
		{"((A))", "A"},
		// Unicode aliases parse identically.
		{"A → B ⇄ C", "((A -> B) || C)"},
	}

	for _, tt := range tests {
		node, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if got := node.String(); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
	}{
		{"", ErrEmptyExpression},
		{"   ", ErrEmptyExpression},
		{"A ->", ErrUnexpectedEnd},
		{"A ||", ErrUnexpectedEnd},
		{"(A -> B", ErrUnexpectedEnd},
		{"-> A", ErrUnexpectedToken},
		{"A -> -> B", ErrUnexpectedToken},
		{"A @ B", ErrUnexpectedToken},
		{"()", ErrUnexpectedToken},
		{"A B", ErrTrailingTokens},
		{"A -> B)", ErrTrailingTokens},
		{"(A) C", ErrTrailingTokens},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want %s error", tt.input, tt.kind)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): got %T, want *ParseError", tt.input, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("Parse(%q): got kind %s (%v), want %s", tt.input, perr.Kind, err, tt.kind)
		}
	}
}

func TestStepsOrderAndDuplicates(t *testing.T) {
	node, err := Parse("Fetch -> (Enrich ->? Score) || Audit")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	steps, err := Steps(node)
	if err != nil {
		t.Fatalf("Steps failed: %v", err)
	}
	want := []string{"Fetch", "Enrich", "Score", "Audit"}
	if len(steps) != len(want) {
		t.Fatalf("Steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i, steps[i], want[i])
		}
	}
}

func TestStepsDuplicate(t *testing.T) {
	tests := []struct {
		input string
		step  string // first duplicate in traversal order
	}{
		{"A -> A", "A"},
		{"A -> B || B -> C", "B"},
		{"(A ->? B) || (C -> A)", "A"},
	}

	for _, tt := range tests {
		node, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		_, err = Steps(node)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Steps(%q): got %v, want *ValidationError", tt.input, err)
			continue
		}
		if verr.Kind != ErrDuplicateStep || verr.Step != tt.step {
			t.Errorf("Steps(%q): got kind %s step %q, want %s %q", tt.input, verr.Kind, verr.Step, ErrDuplicateStep, tt.step)
		}
	}
}
