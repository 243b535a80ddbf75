package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/student/waccgo/ast"
	"github.com/student/waccgo/lexer"
	"github.com/student/waccgo/parser"
)

func analyse(t *testing.T, src string) *Result {
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	return Run(prog)
}

func kinds(res *Result) []DiagnosticKind {
	ks := make([]DiagnosticKind, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		ks[i] = d.Kind
	}
	return ks
}

func TestAnalyse_CleanProgramHasNoDiagnostics(t *testing.T) {
	res := analyse(t, "begin int x = 1 ; exit x end")
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyse_DeclareTypeMismatch(t *testing.T) {
	res := analyse(t, "begin bool x = 1 end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TypeMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_UndefinedVariableAfterScopeExit(t *testing.T) {
	res := analyse(t, "begin begin int x = 1 end ; exit x end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, UndefinedVariable, res.Diagnostics[0].Kind)
}

func TestAnalyse_RedefinedVariableSameFrame(t *testing.T) {
	res := analyse(t, "begin int x = 1 ; int x = 2 end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, RedefinedVariable, res.Diagnostics[0].Kind)
}

func TestAnalyse_ShadowingInInnerScopeIsFine(t *testing.T) {
	res := analyse(t, "begin int x = 1 ; begin int x = 2 ; exit x end ; exit x end")
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyse_IncorrectNumberOfArgs(t *testing.T) {
	res := analyse(t, "begin int f(int x) is return x end int r = call f(1, 2) ; exit r end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, IncorrectNumberOfArgs, res.Diagnostics[0].Kind)
}

func TestAnalyse_UndefinedFunction(t *testing.T) {
	res := analyse(t, "begin int r = call ghost(1) ; exit r end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, UndefinedFunction, res.Diagnostics[0].Kind)
}

func TestAnalyse_RedefinedFunction(t *testing.T) {
	res := analyse(t, `begin
		int f() is return 1 end
		int f() is return 2 end
		int r = call f() ;
		exit r
	end`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, RedefinedFunction, res.Diagnostics[0].Kind)
}

func TestAnalyse_UnexpectedReturnInProgramBody(t *testing.T) {
	res := analyse(t, "begin return 1 end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, UnexpectedReturn, res.Diagnostics[0].Kind)
}

func TestAnalyse_ReturnTypeMismatch(t *testing.T) {
	res := analyse(t, "begin int f() is return true end skip end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TypeMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_CharArrayAssignableToString(t *testing.T) {
	res := analyse(t, `begin char[] cs = ['h', 'i'] ; string s = cs end`)
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyse_PrintTableRecordsBothPrintAndPrintln(t *testing.T) {
	res := analyse(t, `begin print "hello" ; println "hello" end`)
	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.PrintTable, 2)
	for _, tp := range res.PrintTable {
		assert.True(t, ast.Equiv(tp, ast.String()))
	}
}

func TestAnalyse_ArrayDimensionMismatch(t *testing.T) {
	res := analyse(t, "begin int[] xs = [1, 2] ; int y = xs[0][0] end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, ArrayDimensionMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_NewPairErasesNestedPairType(t *testing.T) {
	res := analyse(t, `begin
		pair(int, bool) inner = newpair(1, true) ;
		pair(pair, char) outer = newpair(inner, 'x')
	end`)
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyse_AmbiguousPairElemAssignmentRejected(t *testing.T) {
	// Projecting twice through an erased InnerPair slot yields a genuinely unknown element type
	// on both sides; neither can disambiguate the other.
	res := analyse(t, `begin
		pair(int, int) ip = newpair(1, 2) ;
		pair(int, int) iq = newpair(3, 4) ;
		pair(pair, int) p = newpair(ip, 3) ;
		pair(pair, int) q = newpair(iq, 5) ;
		fst fst p = fst fst q
	end`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TypeMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_ReadRequiresIntOrChar(t *testing.T) {
	res := analyse(t, `begin string s = "x" ; read s end`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TypeMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_FreeRequiresArrayOrPair(t *testing.T) {
	res := analyse(t, "begin int x = 1 ; free x end")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, TypeMismatch, res.Diagnostics[0].Kind)
}

func TestAnalyse_MultipleErrorsAreAllReported(t *testing.T) {
	res := analyse(t, "begin int x = true ; exit y end")
	require.Len(t, res.Diagnostics, 2)
	assert.ElementsMatch(t, []DiagnosticKind{TypeMismatch, UndefinedVariable}, kinds(res))
}

func TestDiagnostic_RenderShowsCaret(t *testing.T) {
	res := analyse(t, "begin bool x = 1 end")
	require.Len(t, res.Diagnostics, 1)
	rendered := res.Diagnostics[0].Render("begin bool x = 1 end")
	assert.Contains(t, rendered, "^")
	assert.Contains(t, rendered, "begin bool x = 1 end")
}
