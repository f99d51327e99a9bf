package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Expression_String(t *testing.T) {
	testCases := []struct {
		name   string
		input  Expression
		expect string
	}{
		{name: "integer", input: Integer(42), expect: "42"},
		{name: "float", input: Float(0.5), expect: "0.5"},
		{name: "ratio", input: Ratio{Num: 1, Den: 2}, expect: "1/2"},
		{name: "variable", input: Variable{Name: "x"}, expect: "x"},
		{name: "unary prefix", input: Unary{Op: "~", Operand: Integer(3)}, expect: "~3"},
		{
			name:   "binary always parenthesized",
			input:  Binary{Op: "+", Left: Integer(3), Right: Integer(4)},
			expect: "(3+4)",
		},
		{
			name:   "function call",
			input:  FunctionCall{Name: "min", Args: []Expression{Integer(3), Integer(5)}},
			expect: "min(3,5)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.input.String())
		})
	}
}

func Test_NewFunctionCall_Errors(t *testing.T) {
	_, err := NewFunctionCall("bogus", nil)
	assert.ErrorIs(t, err, ErrUnknownFunction)

	_, err = NewFunctionCall("sin", []Expression{Integer(1), Integer(2)})
	assert.ErrorIs(t, err, ErrArityMismatch)

	call, err := NewFunctionCall("sin", []Expression{Integer(1)})
	if assert.NoError(t, err) {
		assert.Equal(t, "sin", call.Name)
	}
}

func Test_Build(t *testing.T) {
	// RPN for "3+4*5": 3 4 5 * +
	rpn := []Token{
		{Type: TokInteger, IntVal: 3},
		{Type: TokInteger, IntVal: 4},
		{Type: TokInteger, IntVal: 5},
		{Type: TokOperator, Op: "*"},
		{Type: TokOperator, Op: "+"},
	}

	tree, err := Build(rpn)
	if !assert.NoError(t, err) {
		return
	}

	expect := Binary{
		Op:   "+",
		Left: Integer(3),
		Right: Binary{Op: "*", Left: Integer(4), Right: Integer(5)},
	}
	assert.True(t, expect.Equal(tree), "expected %v, got %v", expect, tree)
}

func Test_Build_StackUnderflow(t *testing.T) {
	rpn := []Token{
		{Type: TokInteger, IntVal: 3},
		{Type: TokOperator, Op: "+"},
	}
	_, err := Build(rpn)
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func Test_Build_UnbalancedStack(t *testing.T) {
	rpn := []Token{
		{Type: TokInteger, IntVal: 3},
		{Type: TokInteger, IntVal: 4},
	}
	_, err := Build(rpn)
	assert.ErrorIs(t, err, ErrUnbalancedStack)
}

func Test_Build_FunctionCall_UnknownFunction(t *testing.T) {
	rpn := []Token{
		{Type: TokInteger, IntVal: 1},
		{Type: TokFunctionCall, FuncName: "bogus", FuncArgCount: 1},
	}
	_, err := Build(rpn)
	assert.ErrorIs(t, err, ErrUnknownFunction)
}
