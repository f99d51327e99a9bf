package mathscript

import "github.com/dekarrin/mathscript/expr"

// differentiate implements spec.md §4.8: a purely structural,
// pattern-directed rewrite of an Expression tree into its formal derivative
// with respect to the named variable. It returns a new, unsimplified tree;
// the identity rewrites of spec.md §4.5 are left to the subsequent call to
// eval (diffHandler evaluates the result before returning it).
func differentiate(e Expression, name string) (Expression, error) {
	switch n := e.(type) {
	case expr.Integer, expr.Float, expr.Ratio:
		return expr.Integer(0), nil
	case expr.Variable:
		if n.Name == name {
			return expr.Integer(1), nil
		}
		return n, nil
	case expr.Binary:
		return differentiateBinary(n, name)
	default:
		// Unary ('~', '!') and FunctionCall have no differentiation rule.
		return nil, expr.NewEvalError(expr.ErrUnsupportedDifferentiation, "cannot differentiate %v", e.Kind())
	}
}

func differentiateBinary(b expr.Binary, name string) (Expression, error) {
	switch b.Op {
	case "+", "-":
		du, err := differentiate(b.Left, name)
		if err != nil {
			return nil, err
		}
		dw, err := differentiate(b.Right, name)
		if err != nil {
			return nil, err
		}
		return expr.Binary{Op: b.Op, Left: du, Right: dw}, nil

	case "*":
		// D(u*w) = u*D(w) + w*D(u)
		du, err := differentiate(b.Left, name)
		if err != nil {
			return nil, err
		}
		dw, err := differentiate(b.Right, name)
		if err != nil {
			return nil, err
		}
		return expr.Binary{
			Op:   "+",
			Left: expr.Binary{Op: "*", Left: b.Left, Right: dw},
			Right: expr.Binary{Op: "*", Left: b.Right, Right: du},
		}, nil

	case "/":
		// D(u/w) = (w*D(u) - u*D(w)) / (w*w)
		du, err := differentiate(b.Left, name)
		if err != nil {
			return nil, err
		}
		dw, err := differentiate(b.Right, name)
		if err != nil {
			return nil, err
		}
		numerator := expr.Binary{
			Op:   "-",
			Left: expr.Binary{Op: "*", Left: b.Right, Right: du},
			Right: expr.Binary{Op: "*", Left: b.Left, Right: dw},
		}
		denominator := expr.Binary{Op: "*", Left: b.Right, Right: b.Right}
		return expr.Binary{Op: "/", Left: numerator, Right: denominator}, nil

	case "^":
		// D(u^w) = w * u^(w-1), treating w as constant (spec.md §4.8).
		exponentMinusOne := expr.Binary{Op: "-", Left: b.Right, Right: expr.Integer(1)}
		power := expr.Binary{Op: "^", Left: b.Left, Right: exponentMinusOne}
		return expr.Binary{Op: "*", Left: b.Right, Right: power}, nil

	default:
		return nil, expr.NewEvalError(expr.ErrUnsupportedDifferentiation, "cannot differentiate operator %q", b.Op)
	}
}
