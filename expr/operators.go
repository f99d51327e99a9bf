package expr

// Operator is a flat record carrying both strategy functions an operator
// needs: a numeric kernel (applied when every operand is numeric) and a
// symbolic rewrite kernel (applied otherwise). This is the flat-record
// alternative spec.md §9 calls out in preference to a class hierarchy,
// modeled on how tunascript/syntax/operators.go keeps operator identity as a
// plain enum with Symbol()/String() methods rather than separate types per
// operator.
type Operator struct {
	Symbol string
	Assoc  Assoc
	Prec   int
	MinArg int
	MaxArg int
}

// CanonicalOperators is the fixed operator table of spec.md §4.2: `!`=6
// left, `~`=5 right, `^`=4 right, `*`=3 left, `/`=3 left, `+`=2 left, `-`=2
// left.
var CanonicalOperators = map[string]Operator{
	"!": {Symbol: "!", Assoc: LeftAssoc, Prec: 6, MinArg: 1, MaxArg: 1},
	"~": {Symbol: "~", Assoc: RightAssoc, Prec: 5, MinArg: 1, MaxArg: 1},
	"^": {Symbol: "^", Assoc: RightAssoc, Prec: 4, MinArg: 2, MaxArg: 2},
	"*": {Symbol: "*", Assoc: LeftAssoc, Prec: 3, MinArg: 2, MaxArg: 2},
	"/": {Symbol: "/", Assoc: LeftAssoc, Prec: 3, MinArg: 2, MaxArg: 2},
	"+": {Symbol: "+", Assoc: LeftAssoc, Prec: 2, MinArg: 2, MaxArg: 2},
	"-": {Symbol: "-", Assoc: LeftAssoc, Prec: 2, MinArg: 2, MaxArg: 2},
}

// EvalUnary applies the '~' or '!' operator to an already-evaluated operand.
// If the operand is numeric, the numeric kernel runs; otherwise both '~' and
// '!' symbolically pass the operand through unchanged (spec.md §4.5) — for
// '~' this is a deliberate, preserved simplification (a known bug in the
// source being ported, see spec.md §9(a) and DESIGN.md), not a typo here.
func EvalUnary(op string, operand Expression) (Expression, error) {
	if !IsNumeric(operand) {
		return operand, nil
	}
	switch op {
	case "~":
		return numericNegate(operand), nil
	case "!":
		return numericFactorial(operand)
	default:
		return nil, parseErrorf(ErrUnknownOperator, "unknown unary operator %q", op)
	}
}

// EvalBinary applies a binary operator to already-evaluated operands. If
// both operands are numeric, the numeric kernel runs; otherwise the
// symbolic identity rewrite of spec.md §4.5 applies, trying at most one
// identity and falling back to constructing Binary(l, r, op) verbatim.
func EvalBinary(op string, l, r Expression) (Expression, error) {
	if IsNumeric(l) && IsNumeric(r) {
		return numericBinary(op, l, r)
	}
	return symbolicBinary(op, l, r)
}

func symbolicBinary(op string, l, r Expression) (Expression, error) {
	switch op {
	case "+":
		if IsNumeric(l) && IsZero(l) {
			return r, nil
		}
		if IsNumeric(r) && IsZero(r) {
			return l, nil
		}
	case "-":
		if IsNumeric(r) && IsZero(r) {
			return l, nil
		}
	case "*":
		if IsNumeric(l) && IsOne(l) {
			return r, nil
		}
		if IsNumeric(r) && IsOne(r) {
			return l, nil
		}
		if IsNumeric(l) && IsZero(l) {
			return Integer(0), nil
		}
		if IsNumeric(r) && IsZero(r) {
			return Integer(0), nil
		}
	case "/":
		if IsNumeric(r) && IsOne(r) {
			return l, nil
		}
		if IsNumeric(r) && IsZero(r) {
			return nil, NewEvalError(ErrDivisionByZero, "division by exact zero")
		}
		if IsNumeric(l) && IsZero(l) {
			return Integer(0), nil
		}
	case "^":
		if IsNumeric(r) && IsZero(r) {
			return Integer(1), nil
		}
		if IsNumeric(r) && IsOne(r) {
			return l, nil
		}
		if IsNumeric(l) && IsZero(l) {
			return Integer(0), nil
		}
		if IsNumeric(l) && IsOne(l) {
			return Integer(1), nil
		}
	default:
		return nil, parseErrorf(ErrUnknownOperator, "unknown binary operator %q", op)
	}
	return Binary{Op: op, Left: l, Right: r}, nil
}
