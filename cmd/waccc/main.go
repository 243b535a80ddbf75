// Command waccc is the compiler driver: file loading, flag parsing, and exit-code mapping. It
// owns none of the compiler's three core stages — it only wires lexer, parser, semantic and
// codegen together and turns the first terminal error into a process exit code, in the same
// thin flag.String-then-linear-pipeline style as xiaobogaga/hack's compiler/main.go.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/student/waccgo/codegen"
	"github.com/student/waccgo/lexer"
	"github.com/student/waccgo/parser"
	"github.com/student/waccgo/semantic"
)

const (
	exitOK       = 0
	exitSyntax   = 100
	exitSemantic = 200
	exitUsage    = 1
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("waccc", flag.ContinueOnError)
	out := fs.String("o", "", "output assembly path (default: input path with .s extension)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: waccc [-o <output-file>] <source-file>")
		return exitUsage
	}
	srcPath := fs.Arg(0)
	outPath := *out
	if outPath == "" {
		outPath = defaultOutputPath(srcPath)
	}

	f, err := os.Open(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waccc: %v\n", err)
		return exitUsage
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waccc: %v\n", err)
		return exitUsage
	}
	src := string(raw)

	toks, err := lexer.Tokenize(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitSyntax
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitSyntax
	}

	result := semantic.Run(prog)
	if len(result.Diagnostics) > 0 {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Render(src))
		}
		return exitSemantic
	}

	output := codegen.Generate(prog, result.PrintTable)
	if err := os.WriteFile(outPath, []byte(output.Render()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "waccc: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func defaultOutputPath(srcPath string) string {
	if idx := strings.LastIndexByte(srcPath, '.'); idx >= 0 {
		return srcPath[:idx] + ".s"
	}
	return srcPath + ".s"
}
