package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/parser"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: theoryc <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  parse <file>    Parse a theory file and report diagnostics\n")
		fmt.Fprintf(os.Stderr, "  ast <file>      Parse a theory file and dump its syntax tree\n")
		fmt.Fprintf(os.Stderr, "  repl            Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "parse":
		runParse(args)
	case "ast":
		runAst(args)
	case "repl":
		os.Exit(runRepl())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func parseFile(filename string) (*ast.Theory, []diag.Diagnostic, string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	src := string(data)
	thy, diags := parser.ParseSource(src, parser.WithFilename(filename))
	return thy, diags, src
}

func runParse(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: theoryc parse <file>\n")
		os.Exit(1)
	}

	thy, diags, src := parseFile(args[0])

	f := diag.NewFormatter()
	f.AddSource(args[0], src)
	f.FormatAll(diags)

	if diag.HasErrors(diags) {
		os.Exit(1)
	}

	fmt.Printf("%s: %d parameter(s), %d import(s), %d declaration(s)\n",
		thy.Name.Name, len(thy.Params), len(thy.Imports), len(thy.Decls))
}

func runAst(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: theoryc ast <file>\n")
		os.Exit(1)
	}

	thy, diags, src := parseFile(args[0])

	f := diag.NewFormatter()
	f.AddSource(args[0], src)
	f.FormatAll(diags)

	dumpTree(os.Stdout, thy)

	if diag.HasErrors(diags) {
		os.Exit(1)
	}
}
