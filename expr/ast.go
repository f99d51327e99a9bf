package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the discriminator for the Expression sum type (spec.md §3).
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindRatio
	KindVariable
	KindUnary
	KindBinary
	KindFunctionCall
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindRatio:
		return "Ratio"
	case KindVariable:
		return "Variable"
	case KindUnary:
		return "Unary"
	case KindBinary:
		return "Binary"
	case KindFunctionCall:
		return "FunctionCall"
	default:
		return "Unknown"
	}
}

// Expression is the immutable tagged value tree produced by Parse and
// consumed by Evaluate. Expression trees are value DAGs: evaluation never
// mutates a node, it returns new trees built from the evaluated children.
type Expression interface {
	// Kind returns the discriminator for this Expression's variant.
	Kind() Kind

	// String renders the Expression per the stable toString shape fixed by
	// spec.md §6.
	String() string

	// Equal reports whether two Expressions have the same structure. This is
	// a structural comparison, not numeric equality: Integer(1) and
	// Ratio{1,1} (which reduce() would never actually produce, since reduce
	// always collapses den=1 to Integer) are not interchangeable inputs to
	// Equal.
	Equal(o Expression) bool
}

// Integer is a machine-width integer leaf. Construction truncates toward
// zero (it is always produced either directly from an integer literal or
// from float64-to-int64 conversion elsewhere, never from float truncation
// rules of its own).
type Integer int64

func (Integer) Kind() Kind       { return KindInteger }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Integer) Equal(o Expression) bool {
	other, ok := o.(Integer)
	return ok && i == other
}

// Float is a 64-bit floating point leaf.
type Float float64

func (Float) Kind() Kind       { return KindFloat }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Equal(o Expression) bool {
	other, ok := o.(Float)
	return ok && f == other
}

// Ratio is an exact rational. The invariant maintained by every constructor
// of a normal-form Ratio (reduceRatio, the only path that builds one) is:
// Den > 0, gcd(|Num|, Den) == 1, and Den != 1 (a Den of 1 always collapses to
// Integer). Ratio values built directly by test code or callers bypassing
// reduceRatio are not guaranteed to satisfy this invariant; use Reduce to
// normalize one.
type Ratio struct {
	Num int64
	Den int64
}

// Reduce normalizes r to the Ratio/Integer normal form described in spec.md
// §3: den=1 or num=0 collapse to Integer, otherwise the fraction is reduced
// to lowest terms with the sign on the numerator. Panics if Den is 0; callers
// constructing a Ratio from a division must check for an exact zero
// denominator first and raise DivisionByZero instead of reaching here.
func (r Ratio) Reduce() Expression {
	return reduceRatio(r.Num, r.Den)
}

func (Ratio) Kind() Kind { return KindRatio }
func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
func (r Ratio) Equal(o Expression) bool {
	other, ok := o.(Ratio)
	return ok && r == other
}

// Variable is a named free symbol. When it appears as the name key of a
// caller-supplied environment it is substituted during evaluation;
// otherwise it evaluates to itself (a symbolic free variable).
type Variable struct {
	Name string
}

func (Variable) Kind() Kind         { return KindVariable }
func (v Variable) String() string   { return v.Name }
func (v Variable) Equal(o Expression) bool {
	other, ok := o.(Variable)
	return ok && v.Name == other.Name
}

// Unary is a prefix (or, for '!', postfix-in-source-but-prefix-in-tree)
// single-operand operation.
type Unary struct {
	Op      string
	Operand Expression
}

func (Unary) Kind() Kind { return KindUnary }
func (u Unary) String() string {
	return u.Op + u.Operand.String()
}
func (u Unary) Equal(o Expression) bool {
	other, ok := o.(Unary)
	return ok && u.Op == other.Op && u.Operand.Equal(other.Operand)
}

// Binary is a two-operand operation. toString always parenthesizes it.
type Binary struct {
	Op          string
	Left, Right Expression
}

func (Binary) Kind() Kind { return KindBinary }
func (b Binary) String() string {
	return "(" + b.Left.String() + b.Op + b.Right.String() + ")"
}
func (b Binary) Equal(o Expression) bool {
	other, ok := o.(Binary)
	return ok && b.Op == other.Op && b.Left.Equal(other.Left) && b.Right.Equal(other.Right)
}

// FunctionCall is a named call with a (possibly empty) argument list. It is
// only ever built via NewFunctionCall (from the AST builder) or by a
// function handler reconstructing a symbolic call from evaluated arguments;
// both paths validate the name and arity against the Functions registry.
type FunctionCall struct {
	Name string
	Args []Expression
}

// NewFunctionCall validates name against the Functions registry and
// constructs a FunctionCall, per spec.md §4.3: UnknownFunction if the name
// is not registered, ArityMismatch if len(args) falls outside [min, max].
func NewFunctionCall(name string, args []Expression) (FunctionCall, error) {
	sig, ok := Functions[name]
	if !ok {
		return FunctionCall{}, parseErrorf(ErrUnknownFunction, "unknown function %q", name)
	}
	if len(args) < sig.MinArgs || len(args) > sig.MaxArgs {
		return FunctionCall{}, parseErrorf(ErrArityMismatch, "function %q takes %s, got %d", name, arityDesc(sig), len(args))
	}
	return FunctionCall{Name: name, Args: args}, nil
}

func arityDesc(sig FunctionSignature) string {
	if sig.MinArgs == sig.MaxArgs {
		return fmt.Sprintf("%d argument(s)", sig.MinArgs)
	}
	return fmt.Sprintf("%d to %d arguments", sig.MinArgs, sig.MaxArgs)
}

func (FunctionCall) Kind() Kind { return KindFunctionCall }
func (f FunctionCall) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
func (f FunctionCall) Equal(o Expression) bool {
	other, ok := o.(FunctionCall)
	if !ok || f.Name != other.Name || len(f.Args) != len(other.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Build folds an RPN token sequence (as produced by Shunt) into an
// Expression tree, per spec.md §4.3.
func Build(rpn []Token) (Expression, error) {
	var stack []Expression

	pop := func(n int) ([]Expression, error) {
		if len(stack) < n {
			return nil, parseErrorf(ErrStackUnderflow, "not enough operands on stack")
		}
		args := make([]Expression, n)
		copy(args, stack[len(stack)-n:])
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, tok := range rpn {
		switch tok.Type {
		case TokInteger:
			stack = append(stack, Integer(tok.IntVal))
		case TokFloat:
			stack = append(stack, Float(tok.FloatVal))
		case TokIdentifier:
			stack = append(stack, Variable{Name: tok.Text})
		case TokOperator:
			arity := 2
			if tok.Op == "~" || tok.Op == "!" {
				arity = 1
			}
			args, err := pop(arity)
			if err != nil {
				return nil, err
			}
			if arity == 1 {
				stack = append(stack, Unary{Op: tok.Op, Operand: args[0]})
			} else {
				stack = append(stack, Binary{Op: tok.Op, Left: args[0], Right: args[1]})
			}
		case TokFunctionCall:
			args, err := pop(tok.FuncArgCount)
			if err != nil {
				return nil, err
			}
			call, err := NewFunctionCall(tok.FuncName, args)
			if err != nil {
				return nil, err
			}
			stack = append(stack, call)
		default:
			return nil, parseErrorf(ErrUnbalancedStack, "unexpected token %s in RPN stream", tok)
		}
	}

	if len(stack) != 1 {
		return nil, parseErrorf(ErrUnbalancedStack, "expected exactly one resulting expression, got %d", len(stack))
	}
	return stack[0], nil
}
