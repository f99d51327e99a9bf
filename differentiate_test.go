package mathscript

import (
	"testing"

	"github.com/dekarrin/mathscript/expr"
	"github.com/stretchr/testify/assert"
)

func Test_Differentiate_Constants(t *testing.T) {
	testCases := []Expression{expr.Integer(5), expr.Float(2.5), expr.Ratio{Num: 1, Den: 2}}
	for _, c := range testCases {
		d, err := differentiate(c, "x")
		if assert.NoError(t, err) {
			assert.Equal(t, expr.Integer(0), d)
		}
	}
}

func Test_Differentiate_MatchingVariable(t *testing.T) {
	d, err := differentiate(expr.Variable{Name: "x"}, "x")
	if assert.NoError(t, err) {
		assert.Equal(t, expr.Integer(1), d)
	}
}

func Test_Differentiate_OtherVariableIsConstant(t *testing.T) {
	d, err := differentiate(expr.Variable{Name: "y"}, "x")
	if assert.NoError(t, err) {
		assert.Equal(t, expr.Variable{Name: "y"}, d)
	}
}

func Test_Differentiate_PowerRule_Simplifies(t *testing.T) {
	// Diff(x^n) should evaluate, after simplification, to n*x^(n-1).
	actual, err := Evaluate("diff(x^4, x)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "(4*(x^3))", actual.String())
}

func Test_Differentiate_UnsupportedOnFunctionCall(t *testing.T) {
	_, err := Evaluate("diff(sin(x), x)", Radians, nil)
	assert.ErrorIs(t, err, expr.ErrUnsupportedDifferentiation)
}

func Test_Differentiate_QuotientRule(t *testing.T) {
	// D(x/y) w.r.t. x: per spec.md §4.8, a non-matching Variable
	// differentiates to itself (not 0), so D(y)=y here rather than 0 — the
	// quotient rule's (w*D(u) - u*D(w))/(w*w) becomes (y*1 - x*y)/(y*y).
	actual, err := Evaluate("diff(x/y, x)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "((y-(x*y))/(y*y))", actual.String())
}
