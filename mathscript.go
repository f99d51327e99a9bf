// Package mathscript is a symbolic expression engine: it parses infix
// arithmetic/algebraic text into an Expression tree (package expr) and
// evaluates that tree against a variable environment, producing either a
// fully reduced numeric value or a partially simplified symbolic expression.
//
// The package exposes exactly two pure operations, Parse and Evaluate, and
// is otherwise free of I/O — the browser/DOM front-end, graph plotting, and
// build pipeline of the system this engine serves are external collaborators
// outside this package's scope. The CLI (cmd/mathscript) and HTTP server
// (server) in this repository are this Go port's own ambient surfaces around
// the same two operations, not part of the engine's contract.
package mathscript

import (
	"math"

	"github.com/dekarrin/mathscript/expr"
)

// Expression re-exports expr.Expression so callers of this package do not
// need to import the expr subpackage directly for the common case.
type Expression = expr.Expression

// Mode selects the angular measurement unit used by trig functions and
// propagates into the recursive diff/sum evaluations. It is otherwise inert.
type Mode int

const (
	Radians Mode = iota
	Degrees
)

// Env is a read-only snapshot of variable bindings. Callers must not mutate
// an Env concurrently with an Evaluate call using it; the engine makes no
// deep copies beyond the shallow merge with the built-in default variables.
type Env map[string]Expression

// defaultEnv holds the always-injected base layer of variables described in
// spec.md §4.6: pi and e. It is process-wide read-only state, computed once
// rather than per call (spec.md §9's correctness-neutral caching note).
var defaultEnv = Env{
	"pi": expr.Float(math.Pi),
	"e":  expr.Float(math.E),
}

// Parse builds an Expression tree from text without evaluating it. It
// returns a LexError- or ParseError-flavored *expr.Error on failure (see
// expr.Err* sentinels).
func Parse(text string) (Expression, error) {
	return expr.Parse(text)
}

// Evaluate parses text and evaluates the resulting tree against vars, with
// the default variable environment (pi, e) injected as a base layer that
// vars shadows. mode is propagated to trig functions and sum/diff.
func Evaluate(text string, mode Mode, vars Env) (Expression, error) {
	tree, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return EvaluateTree(tree, mode, vars)
}

// EvaluateTree evaluates an already-parsed Expression tree. It is exposed
// separately from Evaluate so callers that already hold a parsed tree (for
// example, after round-tripping through Expression.String()) don't have to
// re-serialize and re-parse it.
func EvaluateTree(tree Expression, mode Mode, vars Env) (Expression, error) {
	merged := mergeEnv(vars)
	return eval(tree, mode, merged)
}

func mergeEnv(vars Env) Env {
	merged := make(Env, len(defaultEnv)+len(vars))
	for k, v := range defaultEnv {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	return merged
}

// childEnv returns a copy of base shadowed with a single extra binding,
// the shape sum's per-iteration child snapshot takes (spec.md §4.7).
func childEnv(base Env, name string, value Expression) Env {
	child := make(Env, len(base)+1)
	for k, v := range base {
		child[k] = v
	}
	child[name] = value
	return child
}

// eval is the recursive bottom-up evaluator of spec.md §4.6.
func eval(e Expression, mode Mode, vars Env) (Expression, error) {
	switch n := e.(type) {
	case expr.Integer, expr.Float, expr.Ratio:
		return n, nil
	case expr.Variable:
		if bound, ok := vars[n.Name]; ok {
			return eval(bound, mode, vars)
		}
		return n, nil
	case expr.Unary:
		operand, err := eval(n.Operand, mode, vars)
		if err != nil {
			return nil, err
		}
		return expr.EvalUnary(n.Op, operand)
	case expr.Binary:
		left, err := eval(n.Left, mode, vars)
		if err != nil {
			return nil, err
		}
		right, err := eval(n.Right, mode, vars)
		if err != nil {
			return nil, err
		}
		return expr.EvalBinary(n.Op, left, right)
	case expr.FunctionCall:
		fn, ok := functions[n.Name]
		if !ok {
			// unreachable: expr.NewFunctionCall already validated the name
			// and arity during parsing.
			return nil, expr.NewEvalError(expr.ErrArgumentType, "unknown function %q", n.Name)
		}
		return fn(n.Args, mode, vars)
	default:
		return nil, expr.NewEvalError(expr.ErrArgumentType, "unhandled expression kind %v", e.Kind())
	}
}
