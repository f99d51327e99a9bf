// Package expr implements the lexer, Shunting-Yard converter, and abstract
// syntax tree at the core of mathscript: it turns infix arithmetic text into
// an Expression tree that the root mathscript package can evaluate.
package expr

import "fmt"

// Position is the location in source text a Token was lexed from, used only
// for error reporting.
type Position struct {
	// Offset is the zero-based rune offset into the source text.
	Offset int
}

// Assoc is the associativity of an operator.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// TokenType identifies which variant of Token is populated.
type TokenType int

const (
	TokInteger TokenType = iota
	TokFloat
	TokIdentifier
	TokOperator
	TokPunct
	TokFunctionCall
)

func (t TokenType) String() string {
	switch t {
	case TokInteger:
		return "INTEGER"
	case TokFloat:
		return "FLOAT"
	case TokIdentifier:
		return "IDENTIFIER"
	case TokOperator:
		return "OPERATOR"
	case TokPunct:
		return "PUNCT"
	case TokFunctionCall:
		return "FUNCTION_CALL"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexed unit of source text. Only the fields relevant to
// its Type are meaningful; see the doc comments on each field.
type Token struct {
	Type TokenType
	Pos  Position

	// Text is the raw source text of the token. Populated for TokInteger,
	// TokFloat, TokIdentifier, TokOperator, and TokPunct.
	Text string

	// IntVal holds the parsed value for TokInteger.
	IntVal int64

	// FloatVal holds the parsed value for TokFloat.
	FloatVal float64

	// Op, Assoc, and Prec are populated for TokOperator. The shunter assigns
	// the canonical precedence/associativity from its own table; the lexer
	// only needs to get '^' and '~' marked as right-associative so operand
	// boundaries are unambiguous before shunting.
	Op    string
	Prec  int
	Assoc Assoc

	// FuncName and FuncArgCount are populated for TokFunctionCall, which is
	// synthesized only by the Shunter, never by the Lexer.
	FuncName     string
	FuncArgCount int
}

func (t Token) String() string {
	switch t.Type {
	case TokInteger:
		return fmt.Sprintf("INT(%d)", t.IntVal)
	case TokFloat:
		return fmt.Sprintf("FLOAT(%g)", t.FloatVal)
	case TokIdentifier:
		return fmt.Sprintf("ID(%s)", t.Text)
	case TokOperator:
		return fmt.Sprintf("OP(%s)", t.Op)
	case TokPunct:
		return fmt.Sprintf("PUNCT(%s)", t.Text)
	case TokFunctionCall:
		return fmt.Sprintf("CALL(%s/%d)", t.FuncName, t.FuncArgCount)
	default:
		return "?"
	}
}
