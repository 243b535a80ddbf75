// Package literate extracts end-to-end compiler test cases from a Markdown document: each
// "## Scenario: <name>" heading introduces one case, carrying a fenced `wacc` source block, a
// fenced `exit` block naming the expected process exit code, and an optional fenced
// `diagnostics` block listing substrings each expected diagnostic's rendering must contain (one
// per line). This mirrors strager/zong's sexy.ExtractTestCases, adapted from Zong's
// zong-expr/ast/execute fences to this package's wacc/exit/diagnostics fences.
package literate

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const scenarioPrefix = "Scenario: "

// Case is one end-to-end scenario extracted from a literate document.
type Case struct {
	Name                string
	Source              string
	WantExit            int
	WantDiagnosticParts []string
}

// Extract parses md and returns every scenario it contains, in document order.
func Extract(md string) ([]Case, error) {
	parser := goldmark.New()
	source := []byte(md)
	doc := parser.Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case

	err := gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gast.Heading:
			heading := extractText(node, source)
			if !strings.HasPrefix(heading, scenarioPrefix) {
				return gast.WalkContinue, nil
			}
			if cur != nil {
				if err := validate(cur); err != nil {
					return gast.WalkStop, err
				}
				cases = append(cases, *cur)
			}
			cur = &Case{Name: strings.TrimPrefix(heading, scenarioPrefix)}
		case *gast.FencedCodeBlock:
			if cur == nil {
				return gast.WalkContinue, nil
			}
			lang := string(node.Language(source))
			content := extractCodeBlock(node, source)
			switch lang {
			case "wacc":
				cur.Source = strings.TrimRight(content, "\n")
			case "exit":
				n, err := strconv.Atoi(strings.TrimSpace(content))
				if err != nil {
					return gast.WalkStop, fmt.Errorf("scenario %q: bad exit fence: %w", cur.Name, err)
				}
				cur.WantExit = n
			case "diagnostics":
				for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
					if line = strings.TrimSpace(line); line != "" {
						cur.WantDiagnosticParts = append(cur.WantDiagnosticParts, line)
					}
				}
			}
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if cur != nil {
		if err := validate(cur); err != nil {
			return nil, err
		}
		cases = append(cases, *cur)
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Source == "" {
		return fmt.Errorf("scenario %q: missing wacc fence", c.Name)
	}
	return nil
}

func extractText(n gast.Node, source []byte) string {
	var buf bytes.Buffer
	gast.Walk(n, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if entering {
			if t, ok := node.(*gast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlock(block *gast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
