package expr

// FunctionSignature describes the name and fixed arity range of a built-in
// function, the same split the teacher repo makes between arity-only
// function data (tunascript/syntax/builtins.go's Function) and the actual
// handler implementation (tunascript/functions.go's funcInfo/funcImpl). The
// expr package only knows signatures, so the AST builder can validate a
// FunctionCall's name and arity without importing the mathscript package
// that supplies the handlers (which in turn imports expr) — this also
// mirrors how BuiltInFunctions lives in syntax while the call table lives in
// the root tunascript package.
type FunctionSignature struct {
	Name    string
	MinArgs int
	MaxArgs int
}

// Functions holds the fixed arity of every function the mathscript function
// library recognizes (spec.md §4.7). It does not contain implementations.
var Functions = map[string]FunctionSignature{
	"sin":    {Name: "sin", MinArgs: 1, MaxArgs: 1},
	"cos":    {Name: "cos", MinArgs: 1, MaxArgs: 1},
	"tan":    {Name: "tan", MinArgs: 1, MaxArgs: 1},
	"asin":   {Name: "asin", MinArgs: 1, MaxArgs: 1},
	"acos":   {Name: "acos", MinArgs: 1, MaxArgs: 1},
	"atan":   {Name: "atan", MinArgs: 1, MaxArgs: 1},
	"atan2":  {Name: "atan2", MinArgs: 2, MaxArgs: 2},
	"ln":     {Name: "ln", MinArgs: 1, MaxArgs: 1},
	"log":    {Name: "log", MinArgs: 2, MaxArgs: 2},
	"min":    {Name: "min", MinArgs: 2, MaxArgs: 2},
	"max":    {Name: "max", MinArgs: 2, MaxArgs: 2},
	"sum":    {Name: "sum", MinArgs: 4, MaxArgs: 4},
	"diff":   {Name: "diff", MinArgs: 2, MaxArgs: 2},
}
