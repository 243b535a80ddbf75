package literate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/student/waccgo/codegen"
	"github.com/student/waccgo/lexer"
	"github.com/student/waccgo/parser"
	"github.com/student/waccgo/semantic"
)

func loadScenarios(t *testing.T) []Case {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "testdata", "scenarios.md"))
	be.Err(t, err, nil)
	cases, err := Extract(string(raw))
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)
	return cases
}

// runPipeline drives one scenario's source through lexer -> parser -> semantic -> codegen the
// same way cmd/waccc does, and returns the exit code that would result plus the rendered
// diagnostics (nil past the first stage a failure halts at).
func runPipeline(src string) (exitCode int, diagnostics []string) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return 100, nil
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return 100, nil
	}
	result := semantic.Run(prog)
	if len(result.Diagnostics) > 0 {
		rendered := make([]string, len(result.Diagnostics))
		for i, d := range result.Diagnostics {
			rendered[i] = d.Render(src)
		}
		return 200, rendered
	}
	out := codegen.Generate(prog, result.PrintTable)
	_ = out.Render()
	return 0, nil
}

func TestScenarios(t *testing.T) {
	for _, c := range loadScenarios(t) {
		t.Run(c.Name, func(t *testing.T) {
			gotExit, gotDiags := runPipeline(c.Source)
			be.Equal(t, gotExit, c.WantExit)
			for _, part := range c.WantDiagnosticParts {
				found := false
				for _, d := range gotDiags {
					if strings.Contains(strings.ToLower(d), strings.ToLower(part)) {
						found = true
						break
					}
				}
				be.True(t, found)
			}
		})
	}
}
