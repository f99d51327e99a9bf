/*
Mathscript starts an interactive REPL for evaluating infix
arithmetic/algebraic expressions.

Usage:

	mathscript [flags]

The flags are:

	-v, --version
		Give the current version of mathscript and then exit.

	-m, --mode MODE
		Set the initial angle mode for trig functions, either "radians"
		(the default) or "degrees".

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input, even if launched in a
		tty with stdin and stdout.

	-c, --command EXPRESSION
		Evaluate the given expression immediately and exit, without
		entering the interactive loop.

	--pretty
		Format numeric results with locale-aware grouping instead of the
		engine's bare String() form.

Once started, each line is parsed and evaluated against a variable
environment that persists across the session: "x := 3" binds x, and any
other line is evaluated as an expression. Special commands start with ":":

	:vars     list currently bound variables
	:mode     show or set the current angle mode (":mode degrees")
	:debug    toggle printing the parsed AST before each evaluation
	:quit     exit the REPL
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/mathscript"
	"github.com/dekarrin/mathscript/expr"
	"github.com/dekarrin/mathscript/internal/input"
	"github.com/dekarrin/mathscript/internal/util"
	"github.com/dekarrin/mathscript/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ExitSuccess = iota
	ExitEvalError
	ExitInitError
)

const consoleOutputWidth = 80

var (
	returnCode  int
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagMode    = pflag.StringP("mode", "m", "radians", "Initial angle mode: radians or degrees")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	flagCommand = pflag.StringP("command", "c", "", "Evaluate the given expression and exit")
	flagPretty  = pflag.Bool("pretty", false, "Format numeric results with locale-aware grouping")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	mode, err := parseMode(*flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	printer := message.NewPrinter(language.AmericanEnglish)
	vars := make(mathscript.Env)
	debug := false

	if *flagCommand != "" {
		if debug {
			printDebugAST(*flagCommand)
		}
		if err := evalAndPrint(*flagCommand, mode, vars, printer); err != nil {
			returnCode = ExitEvalError
		}
		return
	}

	var reader interface {
		ReadCommand() (string, error)
		AllowBlank(bool)
		Close() error
	}

	useReadline := !*forceDirect && !*flagVersion
	if useReadline {
		icr, err := input.NewInteractiveReader()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: initializing interactive-mode input reader: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		reader = icr
	} else {
		reader = input.NewDirectReader(os.Stdin)
	}
	defer reader.Close()

	fmt.Printf("mathscript %s (%s mode)\n", version.Current, modeName(mode))
	fmt.Println("Type an expression, a \":command\", or :quit to exit.")

	running := true
	for running {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			running = handleMeta(line, &mode, vars, &debug)
			continue
		}

		if debug {
			printDebugAST(line)
		}
		evalAndPrint(line, mode, vars, printer)
	}
}

func parseMode(s string) (mathscript.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radians", "rad", "":
		return mathscript.Radians, nil
	case "degrees", "deg":
		return mathscript.Degrees, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: must be \"radians\" or \"degrees\"", s)
	}
}

func modeName(m mathscript.Mode) string {
	if m == mathscript.Degrees {
		return "degrees"
	}
	return "radians"
}

func handleMeta(line string, mode *mathscript.Mode, vars mathscript.Env, debug *bool) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit":
		return false
	case ":mode":
		if len(fields) < 2 {
			fmt.Printf("mode: %s\n", modeName(*mode))
			return true
		}
		m, err := parseMode(fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return true
		}
		*mode = m
		fmt.Printf("mode set to %s\n", modeName(*mode))
	case ":vars":
		if len(vars) == 0 {
			fmt.Println("no variables bound")
			return true
		}
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		fmt.Printf("bound: %s\n", util.MakeTextList(names))
	case ":debug":
		*debug = !*debug
		fmt.Printf("AST debug printing: %v\n", *debug)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q\n", fields[0])
	}
	return true
}

// printDebugAST parses text and prints an indented dump of the resulting
// Expression tree to stdout, or the parse error to stderr. Used by the
// ":debug" toggle ahead of each evaluation.
func printDebugAST(text string) {
	tree, err := mathscript.Parse(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return
	}
	fmt.Print(dumpAST(tree, 0))
}

// dumpAST renders e as an indented, one-node-per-line tree, grounded on the
// same recursive-descent shape tunascript/syntax/ast.go's String() methods
// walk, but as an explicit debug dump rather than a re-parsable form.
func dumpAST(e expr.Expression, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case expr.Unary:
		return fmt.Sprintf("%s%s %q\n%s", indent, n.Kind(), n.Op, dumpAST(n.Operand, depth+1))
	case expr.Binary:
		return fmt.Sprintf("%s%s %q\n%s%s", indent, n.Kind(), n.Op, dumpAST(n.Left, depth+1), dumpAST(n.Right, depth+1))
	case expr.FunctionCall:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s%s %q\n", indent, n.Kind(), n.Name)
		for _, arg := range n.Args {
			sb.WriteString(dumpAST(arg, depth+1))
		}
		return sb.String()
	default:
		return fmt.Sprintf("%s%s %s\n", indent, e.Kind(), e.String())
	}
}

// evalAndPrint evaluates line, which may be a bare expression or a
// "NAME := EXPRESSION" assignment that binds a variable in vars for
// subsequent evaluations.
func evalAndPrint(line string, mode mathscript.Mode, vars mathscript.Env, printer *message.Printer) error {
	if name, rhs, ok := strings.Cut(line, ":="); ok {
		name = strings.TrimSpace(name)
		result, err := mathscript.Evaluate(rhs, mode, vars)
		if err != nil {
			printEvalError(err)
			return err
		}
		vars[name] = result
		fmt.Printf("%s = %s\n", name, result.String())
		return nil
	}

	result, err := mathscript.Evaluate(line, mode, vars)
	if err != nil {
		printEvalError(err)
		return err
	}

	if *flagPretty {
		if f, ok := result.(expr.Float); ok {
			printer.Printf("%.6f\n", float64(f))
			return nil
		}
	}
	fmt.Println(result.String())
	return nil
}

func printEvalError(err error) {
	msg := rosed.Edit("ERROR: " + err.Error()).Wrap(consoleOutputWidth).String()
	fmt.Fprintln(os.Stderr, msg)
}
