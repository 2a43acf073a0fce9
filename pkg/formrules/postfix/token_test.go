package postfix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

func tokens(t *testing.T, expr string, vars map[string]any, opts ...Option) []Token {
	t.Helper()
	var out []Token
	for tok, err := range New(opts...).Tokens(expr, vars) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, tok)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		expr string
		vars map[string]any
		want []Token
	}{
		{
			name: "variables and operator",
			expr: "{a} {b} -",
			vars: map[string]any{"a": "4", "b": "3"},
			want: []Token{
				{Kind: TokenVariable, Text: "a", Value: "4", Position: 1},
				{Kind: TokenVariable, Text: "b", Value: "3", Position: 2},
				{Kind: TokenOperator, Text: "-", Position: 3},
			},
		},
		{
			name: "variable value is never split",
			expr: "{a} x =",
			vars: map[string]any{"a": "x y"},
			want: []Token{
				{Kind: TokenVariable, Text: "a", Value: "x y", Position: 1},
				{Kind: TokenLiteral, Text: "x", Value: "x", Position: 2},
				{Kind: TokenOperator, Text: "=", Position: 3},
			},
		},
		{
			name: "variable is never joined to adjacent text",
			expr: "1{a}2",
			vars: map[string]any{"a": 5.0},
			want: []Token{
				{Kind: TokenLiteral, Text: "1", Value: 1.0, Position: 1},
				{Kind: TokenVariable, Text: "a", Value: 5.0, Position: 2},
				{Kind: TokenLiteral, Text: "2", Value: 2.0, Position: 3},
			},
		},
		{
			name: "runs of delimiters are skipped",
			expr: "  1   true  ",
			want: []Token{
				{Kind: TokenLiteral, Text: "1", Value: 1.0, Position: 1},
				{Kind: TokenLiteral, Text: "true", Value: true, Position: 2},
			},
		},
		{
			name: "last token without trailing delimiter",
			expr: "abc",
			want: []Token{
				{Kind: TokenLiteral, Text: "abc", Value: "abc", Position: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokens(t, tt.expr, tt.vars)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_MultiCharacterDelimiter(t *testing.T) {
	got := tokens(t, "{a} :: 2 :: ≥", map[string]any{"a": 3.0}, WithTokenDelimiter(" :: "))
	if len(got) != 3 || got[2].Kind != TokenOperator || got[1].Value != 2.0 {
		t.Errorf("got %+v", got)
	}
}

func TestTokenize_PropagatesSegmentError(t *testing.T) {
	var gotErr error
	count := 0
	for _, err := range New().Tokens("1 {missing} +", nil) {
		if err != nil {
			gotErr = err
			break
		}
		count++
	}
	if gotErr == nil {
		t.Fatal("expected an error")
	}
	if _, ok := gotErr.(*template.UndefinedVariableError); !ok {
		t.Errorf("error = %T, want *template.UndefinedVariableError", gotErr)
	}
	if count != 1 {
		t.Errorf("got %d tokens before the error, want 1", count)
	}
}

func TestTokenize_NilClassifier(t *testing.T) {
	exp := template.NewExpander()
	var kinds []TokenKind
	for tok, err := range Tokenize(exp.Segments("1 2 +", nil), "", nil) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		kinds = append(kinds, tok.Kind)
	}
	if len(kinds) != 3 || kinds[2] != TokenLiteral {
		t.Errorf("kinds = %v, want three literals", kinds)
	}
}

func TestTokenKind_String(t *testing.T) {
	if TokenOperator.String() != "operator" || TokenVariable.String() != "variable" || TokenLiteral.String() != "literal" {
		t.Error("unexpected kind names")
	}
}
