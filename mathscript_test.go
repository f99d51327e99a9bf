package mathscript

import (
	"math"
	"testing"

	"github.com/dekarrin/mathscript/expr"
	"github.com/stretchr/testify/assert"
)

func Test_Evaluate_ConcreteScenarios(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		mode       Mode
		vars       Env
		expectFor  func(t *testing.T, actual Expression)
	}{
		{
			name:  "unary minus then add",
			input: "-3+4",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(1), actual)
			},
		},
		{
			name:  "precedence",
			input: "3+4*5",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(23), actual)
			},
		},
		{
			name:  "exact ratio",
			input: "2/4",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, "1/2", actual.String())
			},
		},
		{
			name:  "float contaminates division",
			input: "2/4.",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, "0.5", actual.String())
			},
		},
		{
			name:  "pi times two is float",
			input: "pi*2",
			expectFor: func(t *testing.T, actual Expression) {
				f, ok := actual.(expr.Float)
				if assert.True(t, ok) {
					assert.InDelta(t, 2*math.Pi, float64(f), 1e-12)
				}
			},
		},
		{
			name:  "variable substitution",
			input: "x*2",
			vars:  Env{"x": expr.Integer(3)},
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(6), actual)
			},
		},
		{
			name:  "parens grouping",
			input: "(3+4)*(2+3)",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(35), actual)
			},
		},
		{
			name:  "factorial",
			input: "5!",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(120), actual)
			},
		},
		{
			name:  "min",
			input: "min(3,5)",
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, 3, expr.AsFloat(actual), 1e-12)
			},
		},
		{
			name:  "sum",
			input: "sum(x^2,x,1,3)",
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, 14, expr.AsFloat(actual), 1e-12)
			},
		},
		{
			name:  "diff",
			input: "diff(x^3+2*x, x)",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, "((3*(x^2))+2)", actual.String())
			},
		},
		{
			name:  "sin in degrees",
			input: "sin(90)",
			mode:  Degrees,
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, 1.0, expr.AsFloat(actual), 1e-4)
			},
		},
		{
			name:  "sin pi/2 in radians",
			input: "sin(pi/2)",
			mode:  Radians,
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, 1.0, expr.AsFloat(actual), 1e-9)
			},
		},
		{
			name:  "asin in degrees",
			input: "asin(1)",
			mode:  Degrees,
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, 90.0, expr.AsFloat(actual), 1e-4)
			},
		},
		{
			name:  "asin in radians",
			input: "asin(1)",
			mode:  Radians,
			expectFor: func(t *testing.T, actual Expression) {
				assert.InDelta(t, math.Pi/2, expr.AsFloat(actual), 1e-9)
			},
		},
		{
			name:  "integer literal",
			input: "123",
			expectFor: func(t *testing.T, actual Expression) {
				assert.Equal(t, expr.Integer(123), actual)
			},
		},
		{
			name:  "trailing-dot float literal",
			input: "123.",
			expectFor: func(t *testing.T, actual Expression) {
				_, ok := actual.(expr.Float)
				assert.True(t, ok)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Evaluate(tc.input, tc.mode, tc.vars)
			if !assert.NoError(t, err) {
				return
			}
			tc.expectFor(t, actual)
		})
	}
}

func Test_Evaluate_UndefinedVariableStaysSymbolic(t *testing.T) {
	actual, err := Evaluate("x+1", Radians, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "(x+1)", actual.String())
}

func Test_Evaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("1/0", Radians, nil)
	assert.ErrorIs(t, err, expr.ErrDivisionByZero)
}

func Test_Evaluate_SumBoundsNotInteger(t *testing.T) {
	_, err := Evaluate("sum(x,x,1.5,3)", Radians, nil)
	assert.ErrorIs(t, err, expr.ErrSumBoundsNotInteger)
}

func Test_Evaluate_UserVariableShadowsDefault(t *testing.T) {
	actual, err := Evaluate("pi", Radians, Env{"pi": expr.Integer(3)})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, expr.Integer(3), actual)
}
