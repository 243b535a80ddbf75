package semantic

import (
	"fmt"
	"strings"

	"github.com/student/waccgo/ast"
)

// DiagnosticKind classifies a semantic error.
type DiagnosticKind int

const (
	RedefinedFunction DiagnosticKind = iota
	RedefinedVariable
	UndefinedVariable
	UndefinedFunction
	TypeMismatch
	IncorrectNumberOfArgs
	ArrayDimensionMismatch
	UnexpectedReturn
)

func (k DiagnosticKind) String() string {
	switch k {
	case RedefinedFunction:
		return "redefined function"
	case RedefinedVariable:
		return "redefined variable"
	case UndefinedVariable:
		return "undefined variable"
	case UndefinedFunction:
		return "undefined function"
	case TypeMismatch:
		return "type mismatch"
	case IncorrectNumberOfArgs:
		return "incorrect number of arguments"
	case ArrayDimensionMismatch:
		return "array dimension mismatch"
	case UnexpectedReturn:
		return "unexpected return"
	default:
		return "semantic error"
	}
}

// Diagnostic is one semantic error: its kind, position, the type actually found (if relevant),
// the set of types that would have been acceptable (if relevant), and a free-text context string
// naming the offending identifier/construct.
type Diagnostic struct {
	Kind     DiagnosticKind
	At       ast.Position
	Got      *ast.Type
	Expected []ast.Type
	Context  string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.At, d.Kind)
	if d.Context != "" {
		fmt.Fprintf(&b, " (%s)", d.Context)
	}
	if d.Got != nil {
		fmt.Fprintf(&b, ", got %s", d.Got)
	}
	if len(d.Expected) > 0 {
		names := make([]string, len(d.Expected))
		for i, e := range d.Expected {
			names[i] = e.String()
		}
		fmt.Fprintf(&b, ", expected one of {%s}", strings.Join(names, ", "))
	}
	return b.String()
}

// Render produces a line-based rendering of the diagnostic against the original source: the
// message followed by the offending line and a caret under the reported column.
func (d *Diagnostic) Render(src string) string {
	lines := strings.Split(src, "\n")
	var b strings.Builder
	b.WriteString(d.Error())
	b.WriteByte('\n')
	if d.At.Line >= 1 && d.At.Line <= len(lines) {
		line := lines[d.At.Line-1]
		b.WriteString(line)
		b.WriteByte('\n')
		col := d.At.Col
		if col < 1 {
			col = 1
		}
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteString("^")
	}
	return b.String()
}
