package mathscript

import (
	"math"
	"testing"

	"github.com/dekarrin/mathscript/expr"
	"github.com/stretchr/testify/assert"
)

func Test_Sin_SymbolicFallback(t *testing.T) {
	actual, err := Evaluate("sin(x)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "sin(x)", actual.String())
}

func Test_Log_BaseAndArgumentOrder(t *testing.T) {
	// spec.md §9(b): log(base, x) = ln(x)/ln(base).
	actual, err := Evaluate("log(2,8)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.InDelta(t, 3.0, expr.AsFloat(actual), 1e-9)
}

func Test_Max(t *testing.T) {
	actual, err := Evaluate("max(3,5)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.InDelta(t, 5.0, expr.AsFloat(actual), 1e-9)
}

func Test_Sum_ArgumentTypeErrorWhenIdentNotVariable(t *testing.T) {
	_, err := Evaluate("sum(1,2,1,3)", Radians, nil)
	assert.ErrorIs(t, err, expr.ErrArgumentType)
}

func Test_Diff_ArgumentTypeErrorWhenIdentNotVariable(t *testing.T) {
	_, err := Evaluate("diff(x,1)", Radians, nil)
	assert.ErrorIs(t, err, expr.ErrArgumentType)
}

func Test_Atan2(t *testing.T) {
	actual, err := Evaluate("atan2(1,1)", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.InDelta(t, math.Pi/4, expr.AsFloat(actual), 1e-9)
}
