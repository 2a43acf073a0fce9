package postfix

import (
	"iter"
	"strings"

	"github.com/randalmurphal/formrules/pkg/formrules/template"
)

// TokenKind tags a Token.
type TokenKind int

const (
	// TokenLiteral is an operand written in the expression.
	TokenLiteral TokenKind = iota
	// TokenVariable is an operand substituted from a {name} reference.
	TokenVariable
	// TokenOperator is a registered operator symbol.
	TokenOperator
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenVariable:
		return "variable"
	case TokenOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is one unit consumed by the evaluator.
type Token struct {
	Kind TokenKind

	// Text is the source text for literals and operators, and the
	// variable name for variables.
	Text string

	// Value is the operand pushed for literals and variables.
	Value any

	// Position is the 1-based index of the token in the stream.
	Position int
}

// Tokenize splits a segment stream into tokens.
//
// Literal text is split on delimiter and empty pieces are skipped. Each
// variable segment becomes exactly one TokenVariable token, never split and
// never joined with neighbouring text. isOperator classifies literal text;
// other literals are parsed with the numeric-casting policy: "true" and
// "false" become bools, decimal numbers become float64, and everything else
// is kept as a string.
//
// The sequence stops after the first segment error.
func Tokenize(segments iter.Seq2[template.Segment, error], delimiter string, isOperator func(string) bool) iter.Seq2[Token, error] {
	if delimiter == "" {
		delimiter = DefaultTokenDelimiter
	}
	return func(yield func(Token, error) bool) {
		pos := 0
		emit := func(tok Token) bool {
			pos++
			tok.Position = pos
			return yield(tok, nil)
		}

		for seg, err := range segments {
			if err != nil {
				yield(Token{}, err)
				return
			}
			if seg.Variable {
				if !emit(Token{Kind: TokenVariable, Text: seg.Name, Value: seg.Value}) {
					return
				}
				continue
			}

			rest := seg.Text
			for rest != "" {
				piece, after, _ := strings.Cut(rest, delimiter)
				rest = after
				if piece == "" {
					continue
				}
				tok := Token{Kind: TokenLiteral, Text: piece}
				if isOperator != nil && isOperator(piece) {
					tok.Kind = TokenOperator
				} else {
					tok.Value = parseLiteral(piece)
				}
				if !emit(tok) {
					return
				}
			}
		}
	}
}
