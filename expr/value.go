package expr

import (
	"fmt"
	"math"
)

// reduceRatio applies the Ratio normal-form invariant described in spec.md
// §3-4.4: a zero numerator collapses to Integer(0); a denominator of 1
// collapses to Integer(num); otherwise the fraction is reduced to lowest
// terms with the sign carried on the numerator.
func reduceRatio(num, den int64) Expression {
	if den == 0 {
		panic("reduceRatio: den=0 must never reach here; caller must raise DivisionByZero first")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Integer(0)
	}
	g := gcd(abs64(num), den)
	num /= g
	den /= g
	if den == 1 {
		return Integer(num)
	}
	return Ratio{Num: num, Den: den}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// AsFloat returns the float64 view of a numeric leaf Expression. Panics if
// the Expression is not a numeric leaf; callers must check IsNumeric first.
func AsFloat(e Expression) float64 {
	switch v := e.(type) {
	case Integer:
		return float64(v)
	case Float:
		return float64(v)
	case Ratio:
		return float64(v.Num) / float64(v.Den)
	default:
		panic(fmt.Sprintf("AsFloat: %T is not numeric", e))
	}
}

// IsNumeric reports whether e is one of the three numeric leaf variants
// (Integer, Float, Ratio).
func IsNumeric(e Expression) bool {
	switch e.(type) {
	case Integer, Float, Ratio:
		return true
	default:
		return false
	}
}

// IsZero reports whether a numeric Expression has value zero.
func IsZero(e Expression) bool {
	switch v := e.(type) {
	case Integer:
		return v == 0
	case Float:
		return v == 0
	case Ratio:
		return v.Num == 0
	default:
		panic(fmt.Sprintf("IsZero: %T is not numeric", e))
	}
}

// IsOne reports whether a numeric Expression has value one.
func IsOne(e Expression) bool {
	switch v := e.(type) {
	case Integer:
		return v == 1
	case Float:
		return v == 1
	case Ratio:
		return v.Num == v.Den
	default:
		panic(fmt.Sprintf("IsOne: %T is not numeric", e))
	}
}

// toRatio views an Integer or Ratio as a (num, den) pair. Must not be called
// with a Float.
func toRatio(e Expression) (int64, int64) {
	switch v := e.(type) {
	case Integer:
		return int64(v), 1
	case Ratio:
		return v.Num, v.Den
	default:
		panic(fmt.Sprintf("toRatio: %T is not exact", e))
	}
}

// numericAdd implements the +, -, *, / promotion rule of spec.md §4.4: if
// either operand is Float the whole operation is done in f64; otherwise both
// are treated as exact rationals and reduce() is applied to the result.
// Exponentiation is always computed in f64 regardless of operand types.
func numericBinary(op string, l, r Expression) (Expression, error) {
	_, lFloat := l.(Float)
	_, rFloat := r.(Float)

	switch op {
	case "+":
		if lFloat || rFloat {
			return Float(AsFloat(l) + AsFloat(r)), nil
		}
		ln, ld := toRatio(l)
		rn, rd := toRatio(r)
		return reduceRatio(ln*rd+rn*ld, ld*rd), nil
	case "-":
		if lFloat || rFloat {
			return Float(AsFloat(l) - AsFloat(r)), nil
		}
		ln, ld := toRatio(l)
		rn, rd := toRatio(r)
		return reduceRatio(ln*rd-rn*ld, ld*rd), nil
	case "*":
		if lFloat || rFloat {
			return Float(AsFloat(l) * AsFloat(r)), nil
		}
		ln, ld := toRatio(l)
		rn, rd := toRatio(r)
		return reduceRatio(ln*rn, ld*rd), nil
	case "/":
		if lFloat || rFloat {
			return Float(AsFloat(l) / AsFloat(r)), nil
		}
		ln, ld := toRatio(l)
		rn, rd := toRatio(r)
		if rn == 0 {
			return nil, NewEvalError(ErrDivisionByZero, "division by exact zero")
		}
		return reduceRatio(ln*rd, ld*rn), nil
	case "^":
		return Float(math.Pow(AsFloat(l), AsFloat(r))), nil
	default:
		panic("numericBinary: unknown operator " + op)
	}
}

// numericFactorial implements spec.md §4.4: defined only on a non-negative
// Integer, computed iteratively.
func numericFactorial(v Expression) (Expression, error) {
	i, ok := v.(Integer)
	if !ok {
		return nil, NewEvalError(ErrFactorialDomain, "factorial is only defined on integers")
	}
	if i < 0 {
		return nil, NewEvalError(ErrFactorialDomain, "factorial is not defined on negative integers")
	}
	result := int64(1)
	for n := int64(2); n <= int64(i); n++ {
		result *= n
	}
	return Integer(result), nil
}

// numericNegate implements spec.md §4.4: negation preserves the variant.
func numericNegate(v Expression) Expression {
	switch t := v.(type) {
	case Integer:
		return -t
	case Float:
		return -t
	case Ratio:
		return Ratio{Num: -t.Num, Den: t.Den}
	default:
		panic(fmt.Sprintf("numericNegate: %T is not numeric", v))
	}
}
