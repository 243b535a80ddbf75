package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/student/waccgo/ast"
	"github.com/student/waccgo/lexer"
	"github.com/student/waccgo/parser"
	"github.com/student/waccgo/semantic"
)

func generate(t *testing.T, src string) *Output {
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	res := semantic.Run(prog)
	require.Empty(t, res.Diagnostics)
	return Generate(prog, res.PrintTable)
}

func TestRegPool_ConsumeReleaseIsLIFOAroundHead(t *testing.T) {
	p := newRegPool()
	a := p.Consume()
	b := p.Consume()
	assert.NotEqual(t, a, b)
	p.Release(b)
	assert.Equal(t, b, p.Peek())
	assert.Equal(t, b, p.Consume())
}

func TestStringPool_DedupsIdenticalLiterals(t *testing.T) {
	sp := newStringPool()
	l1 := sp.Intern("hello")
	l2 := sp.Intern("world")
	l3 := sp.Intern("hello")
	assert.Equal(t, l1, l3)
	assert.NotEqual(t, l1, l2)
	assert.Len(t, sp.Directives(), 2*3)
}

func TestStringPool_EscapesControlCharacters(t *testing.T) {
	assert.Equal(t, `a\nb\0c`, escapeForAssembler("a\nb\x00c"))
}

func TestLabelAllocator_MonotonicAndUnique(t *testing.T) {
	l := &labelAllocator{}
	a := l.next()
	b := l.next()
	assert.NotEqual(t, a, b)
}

func TestFrame_DeclareLocalGrowsExistingOffsets(t *testing.T) {
	f := newFrame()
	f.enter()
	f.declareLocal("x", ast.Int())
	assert.Equal(t, 0, f.offsets["x"])
	f.declareLocal("y", ast.Char())
	assert.Equal(t, 1, f.offsets["x"])
	assert.Equal(t, 0, f.offsets["y"])
}

func TestFrame_MarkRollbackRestoresOffsetsAndSP(t *testing.T) {
	f := newFrame()
	f.enter()
	f.declareLocal("x", ast.Int())
	m := f.mark()
	f.declareLocal("y", ast.Int())
	popped := f.rollback(m)
	assert.Equal(t, 4, popped)
	_, stillThere := f.offsets["y"]
	assert.False(t, stillThere)
	assert.Equal(t, 0, f.offsets["x"])
}

func TestFrame_PushTempGrowsExistingOffsetsLikeDeclareLocal(t *testing.T) {
	f := newFrame()
	f.enter()
	f.declareLocal("x", ast.Int())
	f.pushTemp(4)
	assert.Equal(t, 4, f.offsets["x"])
}

func TestFrame_PopTempUndoesPushTemp(t *testing.T) {
	f := newFrame()
	f.enter()
	f.declareLocal("x", ast.Int())
	f.pushTemp(4)
	f.pushTemp(4)
	f.popTemp(8)
	assert.Equal(t, 0, f.offsets["x"])
}

func TestFrame_BindParamsAssignsPositiveOffsetsInOrder(t *testing.T) {
	f := newFrame()
	f.enter()
	f.bindParams([]paramBinding{
		{Name: "a", Size: 4, Type: ast.Int()},
		{Name: "b", Size: 4, Type: ast.Int()},
	})
	assert.Less(t, f.offsets["a"], f.offsets["b"])
}

func TestGenerate_SimpleExitProgramHasMainAndNoRuntimeChecks(t *testing.T) {
	out := generate(t, "begin exit 7 end")
	text := out.Render()
	assert.Contains(t, text, "main:")
	assert.NotContains(t, text, checkArrayBounds+":")
	assert.NotContains(t, text, checkDivideByZero+":")
}

func TestGenerate_FunctionGetsFixedLabel(t *testing.T) {
	out := generate(t, "begin int f(int x) is return x end int r = call f(1) ; exit r end")
	assert.Contains(t, out.Render(), funcLabel("f")+":")
}

func TestGenerate_DivisionEmitsDivideByZeroCheck(t *testing.T) {
	out := generate(t, "begin int x = 4 / 2 ; exit x end")
	text := out.Render()
	assert.Contains(t, text, checkDivideByZero+":")
	assert.Contains(t, text, throwRuntimeError+":")
}

func TestGenerate_ArrayIndexingEmitsBoundsCheck(t *testing.T) {
	out := generate(t, "begin int[] xs = [1, 2, 3] ; int y = xs[0] ; exit y end")
	assert.Contains(t, out.Render(), checkArrayBounds+":")
}

func TestGenerate_PairDereferenceEmitsNullCheck(t *testing.T) {
	out := generate(t, "begin pair(int, int) p = newpair(1, 2) ; int x = fst p ; exit x end")
	assert.Contains(t, out.Render(), checkNullPointer+":")
}

func TestGenerate_PrintSelectsHelperByStaticType(t *testing.T) {
	out := generate(t, `begin print "hi" ; println 3 end`)
	text := out.Render()
	assert.Contains(t, text, "BL print_string")
	assert.Contains(t, text, "BL print_int")
	assert.Contains(t, text, "BL print_newline")
}

func TestGenerate_AndUsesShortCircuitBranch(t *testing.T) {
	out := generate(t, "begin bool b = (true && false) ; exit 0 end")
	assert.Contains(t, out.Render(), "BEQ")
}

func TestGenerate_OrUsesShortCircuitBranch(t *testing.T) {
	out := generate(t, "begin bool b = (true || false) ; exit 0 end")
	assert.Contains(t, out.Render(), "BNE")
}

func TestGenerate_RuntimeChecksDeduplicatedAcrossCallSites(t *testing.T) {
	out := generate(t, `begin
		int[] xs = [1, 2, 3] ;
		int a = xs[0] ;
		int b = xs[1] ;
		exit a + b
	end`)
	count := 0
	for _, in := range out.Text {
		if in.Op == Label && in.Text == checkArrayBounds {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// mainInstrs returns the slice of out.Text following the `main:` label, so a call-site assertion
// is not confused by SP-relative loads emitted for an earlier function's own body.
func mainInstrs(t *testing.T, out *Output) []Instr {
	t.Helper()
	for i, in := range out.Text {
		if in.Op == Label && in.Text == mainLabel {
			return out.Text[i+1:]
		}
	}
	t.Fatal("main label not found")
	return nil
}

// TestGenerate_SecondArgumentOfCallAddressesItsOwnSlotAfterFirstArgIsPushed guards against
// stale SP-relative offsets during argument marshalling: pushing the first argument moves the
// real stack pointer, so every later argument's identifier load must be computed relative to the
// stack pointer's position *after* that push, not its position at call entry.
func TestGenerate_SecondArgumentOfCallAddressesItsOwnSlotAfterFirstArgIsPushed(t *testing.T) {
	out := generate(t, `begin
		int add(int a, int b) is return a + b end
		int x = 1 ;
		int y = 2 ;
		int r = call add(x, y) ;
		exit r
	end`)
	var spLoads []int
	for _, in := range mainInstrs(t, out) {
		if in.Op == Load && in.Src2.IsMem && in.Src2.MemBase == SP {
			spLoads = append(spLoads, in.Src2.MemOff)
		}
	}
	require.Len(t, spLoads, 3) // x's arg load, y's arg load, r's load for `exit r`
	// Before the call y sits at sp+0 and x one int slot above it. Pushing x's copy moves y up by
	// exactly that slot, so y's own slot is at sp+4, the same offset x was read from; x's copy is
	// at sp+0.
	xOffset, yOffset := spLoads[0], spLoads[1]
	assert.Equal(t, ast.Int().Size(), xOffset)
	assert.Equal(t, xOffset, yOffset,
		"y must be read from its own slot relative to the post-push SP, not x's just-pushed copy")
}

// TestGenerate_TwoDimensionalArrayIndexingDereferencesBetweenDimensions guards against indexing
// a rank-2 array by pointer arithmetic alone: the outer array's slot holds a pointer to the inner
// array object, which must be loaded before the inner index is bounds-checked and applied.
func TestGenerate_TwoDimensionalArrayIndexingDereferencesBetweenDimensions(t *testing.T) {
	out := generate(t, `begin
		int[] a = [1, 2] ;
		int[] b = [3, 4] ;
		int[][] xs = [a, b] ;
		int y = xs[0][1] ;
		exit y
	end`)
	text := out.Render()
	loads := 0
	for _, in := range out.Text {
		if in.Op == Load && in.Src2.IsMem && in.Src2.MemOff == 0 {
			loads++
		}
	}
	// One dereference of the outer slot's stored pointer (between dimensions) plus the final
	// read of the indexed element's value, at minimum.
	assert.GreaterOrEqual(t, loads, 2)
	assert.Contains(t, text, checkArrayBounds+":")
}
