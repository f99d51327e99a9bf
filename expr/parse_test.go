package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_TreeShapes(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Expression
	}{
		{
			// spec.md §8 scenario 1.
			name:  "unary minus then add",
			input: "-3+4",
			expect: Binary{
				Op:    "+",
				Left:  Unary{Op: "~", Operand: Integer(3)},
				Right: Integer(4),
			},
		},
		{
			name:  "precedence: multiply before add",
			input: "3+4*5",
			expect: Binary{
				Op:   "+",
				Left: Integer(3),
				Right: Binary{Op: "*", Left: Integer(4), Right: Integer(5)},
			},
		},
		{
			name:  "parens group",
			input: "(3+4)*(2+3)",
			expect: Binary{
				Op:   "*",
				Left: Binary{Op: "+", Left: Integer(3), Right: Integer(4)},
				Right: Binary{Op: "+", Left: Integer(2), Right: Integer(3)},
			},
		},
		{
			name:  "postfix factorial",
			input: "5!",
			expect: Unary{Op: "!", Operand: Integer(5)},
		},
		{
			name:  "function call with variable and int args",
			input: "min(3,5)",
			expect: FunctionCall{Name: "min", Args: []Expression{Integer(3), Integer(5)}},
		},
		{
			name:  "diff call",
			input: "diff(x^3+2*x, x)",
			expect: FunctionCall{
				Name: "diff",
				Args: []Expression{
					Binary{
						Op:   "+",
						Left: Binary{Op: "^", Left: Variable{Name: "x"}, Right: Integer(3)},
						Right: Binary{Op: "*", Left: Integer(2), Right: Variable{Name: "x"}},
					},
					Variable{Name: "x"},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input)
			if !assert.NoError(err) {
				return
			}
			assert.True(tc.expect.Equal(actual), "expected %v, got %v", tc.expect, actual)
		})
	}
}

func Test_Parse_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  error
	}{
		{name: "mismatched parens", input: "(3+4", kind: ErrMismatchedParens},
		{name: "unknown function", input: "bogus(1)", kind: ErrUnknownFunction},
		{name: "arity mismatch", input: "sin(1,2)", kind: ErrArityMismatch},
		{name: "unexpected char", input: "3+#", kind: ErrUnexpectedChar},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}
