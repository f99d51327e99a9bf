package mathscript

import (
	"math"

	"github.com/dekarrin/mathscript/expr"
)

// handler is the shape every built-in function's implementation takes:
// the ORIGINAL, un-evaluated argument list plus the active mode and
// variable snapshot (spec.md §4.6) — it is up to each handler whether and
// when to evaluate its arguments, the same separation of concerns
// tunascript/functions.go draws between its funcInfo (arity data, looked up
// from the syntax package) and funcImpl (the actual call).
type handler func(args []Expression, mode Mode, vars Env) (Expression, error)

// functions is the process-wide table of built-in handlers, keyed by the
// same names registered in expr.Functions (which the AST builder already
// validated arity against, so handlers can trust len(args)).
var functions map[string]handler

func init() {
	functions = map[string]handler{
		"sin": trigHandler(math.Sin, "sin"),
		"cos": trigHandler(math.Cos, "cos"),
		"tan": trigHandler(math.Tan, "tan"),

		"asin":  arcHandler(1, "asin", func(f []float64) float64 { return math.Asin(f[0]) }),
		"acos":  arcHandler(1, "acos", func(f []float64) float64 { return math.Acos(f[0]) }),
		"atan":  arcHandler(1, "atan", func(f []float64) float64 { return math.Atan(f[0]) }),
		"atan2": arcHandler(2, "atan2", func(f []float64) float64 { return math.Atan2(f[0], f[1]) }),

		"ln":  numericWrapper(1, "ln", func(f []float64) float64 { return math.Log(f[0]) }),
		"log": numericWrapper(2, "log", func(f []float64) float64 { return math.Log(f[1]) / math.Log(f[0]) }),
		"min": numericWrapper(2, "min", func(f []float64) float64 { return math.Min(f[0], f[1]) }),
		"max": numericWrapper(2, "max", func(f []float64) float64 { return math.Max(f[0], f[1]) }),

		"sum":  sumHandler,
		"diff": diffHandler,
	}
}

// radFactor is the radians-conversion factor multiplied into sin/cos/tan
// arguments: Degrees->Radians = pi/180, Radians->Radians = 1 (spec.md §4.7).
func radFactor(mode Mode) Expression {
	if mode == Degrees {
		return expr.Float(math.Pi / 180)
	}
	return expr.Float(1)
}

// invFactor is the inverse conversion factor multiplied into the result of
// the arc functions: Radians->Degrees = 180/pi in Degrees mode, identity in
// Radians mode (spec.md §4.7).
func invFactor(mode Mode) float64 {
	if mode == Degrees {
		return 180 / math.Pi
	}
	return 1
}

// trigHandler implements sin/cos/tan's distinctive argument-scaling
// behavior: the mode conversion factor is folded into the argument (via the
// normal symbolic '*' rewrite) before the numeric check, and the symbolic
// fallback rebuilds the call with the pre-scaling evaluated argument, not
// the scaled one.
func trigHandler(f func(float64) float64, name string) handler {
	return func(args []Expression, mode Mode, vars Env) (Expression, error) {
		evaluated, err := eval(args[0], mode, vars)
		if err != nil {
			return nil, err
		}
		scaled, err := expr.EvalBinary("*", evaluated, radFactor(mode))
		if err != nil {
			return nil, err
		}
		if expr.IsNumeric(scaled) {
			return expr.Float(f(expr.AsFloat(scaled))), nil
		}
		return expr.NewFunctionCall(name, []Expression{evaluated})
	}
}

// arcHandler implements asin/acos/atan/atan2: arguments are evaluated as
// f64, the arc function applied, and the result scaled by invFactor.
func arcHandler(n int, name string, f func([]float64) float64) handler {
	return numericWrapperWithResult(n, name, func(vals []float64, mode Mode) float64 {
		return f(vals) * invFactor(mode)
	})
}

// numericWrapper implements the general "functions that take f64 arguments
// uniformly return Float" rule of spec.md §4.7's closing paragraph: all
// args are evaluated; if every one is numeric, f is applied to their float64
// views and the result returned as Float; otherwise a symbolic
// FunctionCall(name, evaluatedArgs) is rebuilt.
func numericWrapper(n int, name string, f func([]float64) float64) handler {
	return numericWrapperWithResult(n, name, func(vals []float64, _ Mode) float64 {
		return f(vals)
	})
}

func numericWrapperWithResult(n int, name string, f func(vals []float64, mode Mode) float64) handler {
	return func(args []Expression, mode Mode, vars Env) (Expression, error) {
		evaluated := make([]Expression, len(args))
		allNumeric := true
		for i, a := range args {
			v, err := eval(a, mode, vars)
			if err != nil {
				return nil, err
			}
			evaluated[i] = v
			if !expr.IsNumeric(v) {
				allNumeric = false
			}
		}
		if !allNumeric {
			return expr.NewFunctionCall(name, evaluated)
		}
		floats := make([]float64, len(evaluated))
		for i, v := range evaluated {
			floats[i] = expr.AsFloat(v)
		}
		return expr.Float(f(floats, mode)), nil
	}
}

// sumHandler implements sum(expr, ident, start, end) per spec.md §4.7: start
// and end must evaluate to exact Integers; the accumulator starts at
// Integer(0) and, for each i in [start, end], a child environment shadows
// ident.Name with Integer(i), expr is evaluated in it, and the accumulator
// is folded in via the '+' operator evaluated against the OUTER vars.
func sumHandler(args []Expression, mode Mode, vars Env) (Expression, error) {
	body, identArg, startArg, endArg := args[0], args[1], args[2], args[3]

	ident, ok := identArg.(expr.Variable)
	if !ok {
		return nil, expr.NewEvalError(expr.ErrArgumentType, "sum: second argument must be a variable, got %v", identArg.Kind())
	}

	start, err := eval(startArg, mode, vars)
	if err != nil {
		return nil, err
	}
	end, err := eval(endArg, mode, vars)
	if err != nil {
		return nil, err
	}
	startI, ok1 := start.(expr.Integer)
	endI, ok2 := end.(expr.Integer)
	if !ok1 || !ok2 {
		return nil, expr.NewEvalError(expr.ErrSumBoundsNotInteger, "sum: bounds must evaluate to exact integers")
	}

	var acc Expression = expr.Integer(0)
	for i := int64(startI); i <= int64(endI); i++ {
		iterEnv := childEnv(vars, ident.Name, expr.Integer(i))
		value, err := eval(body, mode, iterEnv)
		if err != nil {
			return nil, err
		}
		acc, err = eval(expr.Binary{Op: "+", Left: acc, Right: value}, mode, vars)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// diffHandler implements diff(expr, ident) per spec.md §4.7: structurally
// differentiate expr with respect to ident.Name, then evaluate the result
// (which applies the identity simplifications of spec.md §4.5).
func diffHandler(args []Expression, mode Mode, vars Env) (Expression, error) {
	body, identArg := args[0], args[1]

	ident, ok := identArg.(expr.Variable)
	if !ok {
		return nil, expr.NewEvalError(expr.ErrArgumentType, "diff: second argument must be a variable, got %v", identArg.Kind())
	}

	derivative, err := differentiate(body, ident.Name)
	if err != nil {
		return nil, err
	}
	return eval(derivative, mode, vars)
}
