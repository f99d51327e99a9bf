package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EvalBinary_SymbolicIdentities(t *testing.T) {
	testCases := []struct {
		name   string
		op     string
		l, r   Expression
		expect Expression
	}{
		{name: "0+x=x", op: "+", l: Integer(0), r: Variable{Name: "x"}, expect: Variable{Name: "x"}},
		{name: "x+0=x", op: "+", l: Variable{Name: "x"}, r: Integer(0), expect: Variable{Name: "x"}},
		{name: "x-0=x", op: "-", l: Variable{Name: "x"}, r: Integer(0), expect: Variable{Name: "x"}},
		{name: "1*x=x", op: "*", l: Integer(1), r: Variable{Name: "x"}, expect: Variable{Name: "x"}},
		{name: "x*1=x", op: "*", l: Variable{Name: "x"}, r: Integer(1), expect: Variable{Name: "x"}},
		{name: "0*x=0", op: "*", l: Integer(0), r: Variable{Name: "x"}, expect: Integer(0)},
		{name: "x/1=x", op: "/", l: Variable{Name: "x"}, r: Integer(1), expect: Variable{Name: "x"}},
		{name: "0/x=0", op: "/", l: Integer(0), r: Variable{Name: "x"}, expect: Integer(0)},
		{name: "x^0=1", op: "^", l: Variable{Name: "x"}, r: Integer(0), expect: Integer(1)},
		{name: "x^1=x", op: "^", l: Variable{Name: "x"}, r: Integer(1), expect: Variable{Name: "x"}},
		{name: "0^x=0", op: "^", l: Integer(0), r: Variable{Name: "x"}, expect: Integer(0)},
		{name: "1^x=1", op: "^", l: Integer(1), r: Variable{Name: "x"}, expect: Integer(1)},
		{
			name: "no identity falls through to Binary",
			op:   "+", l: Variable{Name: "x"}, r: Variable{Name: "y"},
			expect: Binary{Op: "+", Left: Variable{Name: "x"}, Right: Variable{Name: "y"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := EvalBinary(tc.op, tc.l, tc.r)
			if !assert.NoError(t, err) {
				return
			}
			assert.True(t, tc.expect.Equal(actual), "expected %v, got %v", tc.expect, actual)
		})
	}
}

func Test_EvalBinary_DivisionByZero_Symbolic(t *testing.T) {
	_, err := EvalBinary("/", Variable{Name: "x"}, Integer(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func Test_EvalUnary_Numeric(t *testing.T) {
	negated, err := EvalUnary("~", Integer(3))
	if assert.NoError(t, err) {
		assert.Equal(t, Integer(-3), negated)
	}

	fact, err := EvalUnary("!", Integer(5))
	if assert.NoError(t, err) {
		assert.Equal(t, Integer(120), fact)
	}
}

func Test_EvalUnary_Symbolic_IsIdentityPassThrough(t *testing.T) {
	// spec.md §9(a) / §4.5: both '~' and '!' symbolically return the operand
	// unchanged rather than wrapping it in Unary — a preserved source bug
	// for '~', by design for '!'.
	negated, err := EvalUnary("~", Variable{Name: "x"})
	if assert.NoError(t, err) {
		assert.True(t, Variable{Name: "x"}.Equal(negated))
	}

	fact, err := EvalUnary("!", Variable{Name: "x"})
	if assert.NoError(t, err) {
		assert.True(t, Variable{Name: "x"}.Equal(fact))
	}
}
