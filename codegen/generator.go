// Package codegen lowers a type-checked *ast.Program into a textual ARM assembly listing: an
// abstract Instr stream built up through a register pool, a stack frame tracker, a string pool and
// a label allocator, then rendered one-to-one into GAS syntax. There is no machine encoder; this
// mirrors xiaobogaga/hack's code_generator.go, which emits Hack VM text the same way.
package codegen

import (
	"strings"

	"github.com/student/waccgo/ast"
	"github.com/student/waccgo/semantic"
)

// Output is the generated program, split the way the final listing is: interned strings destined
// for `.data`, instructions destined for `.text`.
type Output struct {
	Data []Instr
	Text []Instr
}

// Render prints Output as a complete GAS-syntax assembly listing.
func (o *Output) Render() string {
	var b strings.Builder
	b.WriteString(".data\n\n")
	for _, in := range o.Data {
		b.WriteString(in.emit())
		b.WriteByte('\n')
	}
	b.WriteString("\n.text\n\n.global main\n")
	for _, in := range o.Text {
		b.WriteString(in.emit())
		b.WriteByte('\n')
	}
	return b.String()
}

// Generator walks a checked program and accumulates the abstract instruction stream. One Generator
// generates a whole program; pool and frame are reset per function via genFunc/genMain.
type Generator struct {
	printTable semantic.PrintTable
	strs       *stringPool
	labels     *labelAllocator
	usedChecks map[string]bool

	pool  *regPool
	frame *frame

	instrs []Instr
}

// Generate lowers prog into an Output. pt is the print table semantic.Run produced for the same
// program; it tells Print/Println which runtime routine to call for the operand's static type.
func Generate(prog *ast.Program, pt semantic.PrintTable) *Output {
	g := &Generator{
		printTable: pt,
		strs:       newStringPool(),
		labels:     &labelAllocator{},
		usedChecks: map[string]bool{},
	}
	for _, fn := range prog.Funcs {
		g.genFunc(fn)
	}
	g.genMain(prog.Body)
	g.appendRuntimeChecks()
	return &Output{Data: g.strs.Directives(), Text: g.instrs}
}

func (g *Generator) emit(i Instr) { g.instrs = append(g.instrs, i) }

func (g *Generator) genFunc(fn *ast.Func) {
	g.pool = newRegPool()
	g.frame = newFrame()

	g.emit(Instr{Op: Label, Text: funcLabel(fn.Name)})
	g.emit(Instr{Op: Push, Dst: LR})
	g.frame.enter()

	params := make([]paramBinding, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = paramBinding{Name: p.Name, Size: p.Type.Size(), Type: p.Type}
	}
	g.frame.bindParams(params)

	g.genStatList(fn.Body)

	if delta := g.frame.spOffset - g.frame.originalSP(); delta > 0 {
		g.emit(Instr{Op: AddInstr, Dst: SP, Src1: SP, Src2: ImmOp(delta)})
	}
	g.emit(Instr{Op: Pop, Dst: PC})
	g.emit(Instr{Op: Directive, Text: ".ltorg"})
}

// genMain lowers the program body into the `main` entry point. A body that falls off the end
// without an explicit `exit`/`return` statement exits 0.
func (g *Generator) genMain(body []ast.Stat) {
	g.pool = newRegPool()
	g.frame = newFrame()

	g.emit(Instr{Op: Label, Text: mainLabel})
	g.emit(Instr{Op: Push, Dst: LR})
	g.frame.enter()

	g.genStatList(body)

	if delta := g.frame.spOffset - g.frame.originalSP(); delta > 0 {
		g.emit(Instr{Op: AddInstr, Dst: SP, Src1: SP, Src2: ImmOp(delta)})
	}
	g.emit(Instr{Op: Move, Dst: R0, Src2: ImmOp(0)})
	g.emit(Instr{Op: Pop, Dst: PC})
	g.emit(Instr{Op: Directive, Text: ".ltorg"})
}

func (g *Generator) genStatList(stats []ast.Stat) {
	for _, st := range stats {
		g.genStat(st)
	}
}

// genBlock generates stats in their own scope, rolling the frame back to its entry state
// afterwards and popping whatever the block's own declarations pushed.
func (g *Generator) genBlock(stats []ast.Stat) {
	mark := g.frame.mark()
	g.genStatList(stats)
	popped := g.frame.rollback(mark)
	if popped > 0 {
		g.emit(Instr{Op: AddInstr, Dst: SP, Src1: SP, Src2: ImmOp(popped)})
	}
}

func (g *Generator) genStat(stat ast.Stat) {
	switch st := stat.(type) {
	case *ast.SkipStat:
	case *ast.DeclareStat:
		reg := g.genRValue(st.Value)
		g.frame.declareLocal(st.Name, st.Type)
		g.emit(Instr{Op: Push, Dst: reg})
		g.pool.Release(reg)
	case *ast.AssignStat:
		reg := g.genRValue(st.Value)
		g.storeLValue(st.Target, reg)
		g.pool.Release(reg)
	case *ast.ReadStat:
		g.genRead(st)
	case *ast.FreeStat:
		reg := g.genExpr(st.Value)
		g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(reg)})
		g.emit(Instr{Op: BranchAndLink, Text: "free"})
		g.pool.Release(reg)
	case *ast.ReturnStat:
		reg := g.genExpr(st.Value)
		g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(reg)})
		g.pool.Release(reg)
		if delta := g.frame.spOffset - g.frame.originalSP(); delta > 0 {
			g.emit(Instr{Op: AddInstr, Dst: SP, Src1: SP, Src2: ImmOp(delta)})
		}
		g.emit(Instr{Op: Pop, Dst: PC})
	case *ast.ExitStat:
		reg := g.genExpr(st.Value)
		g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(reg)})
		g.emit(Instr{Op: BranchAndLink, Text: "exit"})
		g.pool.Release(reg)
	case *ast.PrintStat:
		g.genPrint(st.Value, false)
	case *ast.PrintlnStat:
		g.genPrint(st.Value, true)
	case *ast.IfStat:
		g.genIf(st)
	case *ast.WhileStat:
		g.genWhile(st)
	case *ast.ScopeStat:
		g.genBlock(st.Body)
	}
}

func (g *Generator) genRead(st *ast.ReadStat) {
	t := LValueType(st.Target)
	helper := "read_int"
	if ast.Equiv(t, ast.Char()) {
		helper = "read_char"
	}
	g.emit(Instr{Op: BranchAndLink, Text: helper})
	result := g.pool.Consume()
	g.emit(Instr{Op: Move, Dst: result, Src2: RegOp(R0)})
	g.storeLValue(st.Target, result)
	g.pool.Release(result)
}

func printHelper(t ast.Type) string {
	switch {
	case ast.Equiv(t, ast.Int()):
		return "print_int"
	case ast.Equiv(t, ast.Bool()):
		return "print_bool"
	case ast.Equiv(t, ast.Char()):
		return "print_char"
	case ast.Equiv(t, ast.String()):
		return "print_string"
	default:
		return "print_reference"
	}
}

func (g *Generator) genPrint(value ast.Expr, newline bool) {
	reg := g.genExpr(value)
	t := g.printTable[value.Pos()]
	g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(reg)})
	g.emit(Instr{Op: BranchAndLink, Text: printHelper(t)})
	g.pool.Release(reg)
	if newline {
		g.emit(Instr{Op: BranchAndLink, Text: "print_newline"})
	}
}

func (g *Generator) genIf(st *ast.IfStat) {
	cond := g.genExpr(st.Cond)
	elseLabel := g.labels.next()
	endLabel := g.labels.next()
	g.emit(Instr{Op: Cmp, Dst: cond, Src2: ImmOp(0)})
	g.pool.Release(cond)
	g.emit(Instr{Op: Branch, Cond: EQ, Text: elseLabel})
	g.genBlock(st.Then)
	g.emit(Instr{Op: Branch, Cond: AL, Text: endLabel})
	g.emit(Instr{Op: Label, Text: elseLabel})
	g.genBlock(st.Else)
	g.emit(Instr{Op: Label, Text: endLabel})
}

func (g *Generator) genWhile(st *ast.WhileStat) {
	condLabel := g.labels.next()
	bodyLabel := g.labels.next()
	g.emit(Instr{Op: Branch, Cond: AL, Text: condLabel})
	g.emit(Instr{Op: Label, Text: bodyLabel})
	g.genBlock(st.Body)
	g.emit(Instr{Op: Label, Text: condLabel})
	cond := g.genExpr(st.Cond)
	g.emit(Instr{Op: Cmp, Dst: cond, Src2: ImmOp(1)})
	g.pool.Release(cond)
	g.emit(Instr{Op: Branch, Cond: EQ, Text: bodyLabel})
}

// genRValue lowers anything a Declare/Assign/call-argument can produce a value from into a
// register holding that value.
func (g *Generator) genRValue(rv ast.RValue) Reg {
	switch v := rv.(type) {
	case *ast.ArrayLit:
		return g.genArrayLit(v)
	case *ast.NewPair:
		return g.genNewPair(v)
	case *ast.Call:
		return g.genCall(v)
	case *ast.PairElem:
		addr := g.genPairElemAddr(v)
		g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(addr, 0)})
		return addr
	case ast.Expr:
		return g.genExpr(v)
	default:
		panic("codegen: unhandled rvalue")
	}
}

func (g *Generator) genExpr(e ast.Expr) Reg {
	switch v := e.(type) {
	case *ast.IntLit:
		r := g.pool.Consume()
		g.emit(Instr{Op: Move, Dst: r, Src2: ImmOp(v.Value)})
		return r
	case *ast.BoolLit:
		r := g.pool.Consume()
		val := 0
		if v.Value {
			val = 1
		}
		g.emit(Instr{Op: Move, Dst: r, Src2: ImmOp(val)})
		return r
	case *ast.CharLit:
		r := g.pool.Consume()
		g.emit(Instr{Op: Move, Dst: r, Src2: ImmOp(int(v.Value))})
		return r
	case *ast.StringLit:
		lbl := g.strs.Intern(v.Value)
		r := g.pool.Consume()
		g.emit(Instr{Op: LoadAddr, Dst: r, Text: lbl})
		return r
	case *ast.NullLit:
		r := g.pool.Consume()
		g.emit(Instr{Op: Move, Dst: r, Src2: ImmOp(0)})
		return r
	case *ast.Ident:
		return g.genIdentLoad(v)
	case *ast.ArrayElem:
		addr := g.genArrayElemAddr(v)
		g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(addr, 0)})
		return addr
	case *ast.Paren:
		return g.genExpr(v.Inner)
	case *ast.UnaryExpr:
		return g.genUnary(v)
	case *ast.BinaryExpr:
		return g.genBinary(v)
	default:
		panic("codegen: unhandled expr")
	}
}

func (g *Generator) genIdentLoad(id *ast.Ident) Reg {
	r := g.pool.Consume()
	if off, ok := g.frame.offsets[id.Name]; ok {
		g.emit(Instr{Op: Load, Dst: r, Src2: MemOp(SP, off)})
	}
	return r
}

func (g *Generator) genUnary(u *ast.UnaryExpr) Reg {
	r := g.genExpr(u.Operand)
	switch u.Op {
	case ast.Not:
		g.emit(Instr{Op: XorInstr, Dst: r, Src1: r, Src2: ImmOp(1)})
	case ast.Negate:
		g.emit(Instr{Op: Rsb, Dst: r, Src1: r, Src2: ImmOp(0)})
	case ast.Len:
		g.emit(Instr{Op: Load, Dst: r, Src2: MemOp(r, 0)})
	case ast.Ord, ast.Chr:
		// representation-preserving: chars and their ordinal ints share one encoding
	}
	return r
}

var relCond = map[ast.BinaryOp][2]Cond{
	ast.Lt:       {LT, GE},
	ast.Le:       {LE, GT},
	ast.Gt:       {GT, LE},
	ast.Ge:       {GE, LT},
	ast.Equal:    {EQ, NE},
	ast.NotEqual: {NE, EQ},
}

func (g *Generator) genBinary(b *ast.BinaryExpr) Reg {
	if b.Op == ast.And {
		return g.genShortCircuit(b, EQ)
	}
	if b.Op == ast.Or {
		return g.genShortCircuit(b, NE)
	}
	lhs := g.genExpr(b.Left)
	rhs := g.genExpr(b.Right)
	switch b.Op {
	case ast.Add:
		g.emit(Instr{Op: AddInstr, Dst: lhs, Src1: lhs, Src2: RegOp(rhs)})
	case ast.Sub:
		g.emit(Instr{Op: SubInstr, Dst: lhs, Src1: lhs, Src2: RegOp(rhs)})
	case ast.Mul:
		g.emit(Instr{Op: Mul, Dst: lhs, Src1: lhs, Src2: RegOp(rhs)})
	case ast.Div:
		g.emitZeroCheck(rhs)
		g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(lhs)})
		g.emit(Instr{Op: Move, Dst: R1, Src2: RegOp(rhs)})
		g.emit(Instr{Op: BranchAndLink, Text: "__aeabi_idiv"})
		g.emit(Instr{Op: Move, Dst: lhs, Src2: RegOp(R0)})
	case ast.Mod:
		g.emitZeroCheck(rhs)
		g.emit(Instr{Op: Move, Dst: R0, Src2: RegOp(lhs)})
		g.emit(Instr{Op: Move, Dst: R1, Src2: RegOp(rhs)})
		g.emit(Instr{Op: BranchAndLink, Text: "__aeabi_idivmod"})
		g.emit(Instr{Op: Move, Dst: lhs, Src2: RegOp(R1)})
	default:
		conds := relCond[b.Op]
		g.emit(Instr{Op: Cmp, Dst: lhs, Src2: RegOp(rhs)})
		g.emit(Instr{Op: Move, Cond: conds[0], Dst: lhs, Src2: ImmOp(1)})
		g.emit(Instr{Op: Move, Cond: conds[1], Dst: lhs, Src2: ImmOp(0)})
	}
	g.pool.Release(rhs)
	return lhs
}

// genShortCircuit lowers && and || via a branch around the right operand rather than evaluating
// it eagerly: skipCond is the condition on the left operand's truth value (0 or 1, compared
// against 0) under which the right side is never evaluated.
func (g *Generator) genShortCircuit(b *ast.BinaryExpr, skipCond Cond) Reg {
	reg := g.genExpr(b.Left)
	skip := g.labels.next()
	g.emit(Instr{Op: Cmp, Dst: reg, Src2: ImmOp(0)})
	g.emit(Instr{Op: Branch, Cond: skipCond, Text: skip})
	rhs := g.genExpr(b.Right)
	g.emit(Instr{Op: Move, Dst: reg, Src2: RegOp(rhs)})
	g.pool.Release(rhs)
	g.emit(Instr{Op: Label, Text: skip})
	return reg
}

func (g *Generator) emitZeroCheck(divisor Reg) {
	g.emit(Instr{Op: Cmp, Dst: divisor, Src2: ImmOp(0)})
	g.emit(Instr{Op: Branch, Cond: EQ, Text: checkDivideByZero})
	g.usedChecks[checkDivideByZero] = true
}

// genArrayElemAddr descends through every index of ae, bounds-checking and scaling by the
// element size at each dimension, and returns a register holding the address of the final
// element (the length-prefix word is skipped at each dimension crossed). For rank >= 2, each
// dimension but the last stores a pointer to the next dimension's array object, not the element
// itself, so the computed slot address is dereferenced before it is used as the next dimension's
// base.
func (g *Generator) genArrayElemAddr(ae *ast.ArrayElem) Reg {
	addr := g.pool.Consume()
	if off, ok := g.frame.offsets[ae.Name]; ok {
		g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(SP, off)})
	}
	cur := g.frame.types[ae.Name]
	for i, idx := range ae.Indices {
		idxReg := g.genExpr(idx)
		g.emitBoundsCheck(addr, idxReg)
		elemSize := 4
		if cur.IsArray() {
			elemSize = cur.Elem.Size()
		}
		if elemSize != 1 {
			sizeReg := g.pool.Consume()
			g.emit(Instr{Op: Move, Dst: sizeReg, Src2: ImmOp(elemSize)})
			g.emit(Instr{Op: Mul, Dst: idxReg, Src1: idxReg, Src2: RegOp(sizeReg)})
			g.pool.Release(sizeReg)
		}
		g.emit(Instr{Op: AddInstr, Dst: addr, Src1: addr, Src2: ImmOp(4)})
		g.emit(Instr{Op: AddInstr, Dst: addr, Src1: addr, Src2: RegOp(idxReg)})
		g.pool.Release(idxReg)
		if cur.IsArray() {
			cur = *cur.Elem
		}
		if i < len(ae.Indices)-1 {
			g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(addr, 0)})
		}
	}
	return addr
}

func (g *Generator) emitBoundsCheck(addr, idx Reg) {
	lenReg := g.pool.Consume()
	g.emit(Instr{Op: Load, Dst: lenReg, Src2: MemOp(addr, 0)})
	g.emit(Instr{Op: Cmp, Dst: idx, Src2: RegOp(lenReg)})
	g.pool.Release(lenReg)
	g.emit(Instr{Op: Branch, Cond: GE, Text: checkArrayBounds})
	g.emit(Instr{Op: Cmp, Dst: idx, Src2: ImmOp(0)})
	g.emit(Instr{Op: Branch, Cond: LT, Text: checkArrayBounds})
	g.usedChecks[checkArrayBounds] = true
}

// genPairElemAddr evaluates pe's inner pointer, null-checks it, and returns a register holding
// the address of the fst (offset 0) or snd (offset 4) slot.
func (g *Generator) genPairElemAddr(pe *ast.PairElem) Reg {
	ptr := g.genLValueValue(pe.Inner)
	g.emit(Instr{Op: Cmp, Dst: ptr, Src2: ImmOp(0)})
	g.emit(Instr{Op: Branch, Cond: EQ, Text: checkNullPointer})
	g.usedChecks[checkNullPointer] = true
	if pe.Selector == ast.Snd {
		g.emit(Instr{Op: AddInstr, Dst: ptr, Src1: ptr, Src2: ImmOp(4)})
	}
	return ptr
}

// genLValueValue evaluates lv to a register holding its current value (as opposed to its address).
func (g *Generator) genLValueValue(lv ast.LValue) Reg {
	switch v := lv.(type) {
	case *ast.Ident:
		return g.genIdentLoad(v)
	case *ast.ArrayElem:
		addr := g.genArrayElemAddr(v)
		g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(addr, 0)})
		return addr
	case *ast.PairElem:
		addr := g.genPairElemAddr(v)
		g.emit(Instr{Op: Load, Dst: addr, Src2: MemOp(addr, 0)})
		return addr
	default:
		panic("codegen: unhandled lvalue")
	}
}

func (g *Generator) storeLValue(target ast.LValue, reg Reg) {
	switch v := target.(type) {
	case *ast.Ident:
		if off, ok := g.frame.offsets[v.Name]; ok {
			g.emit(Instr{Op: Store, Dst: reg, Src2: MemOp(SP, off)})
		}
	case *ast.ArrayElem:
		addr := g.genArrayElemAddr(v)
		g.emit(Instr{Op: Store, Dst: reg, Src2: MemOp(addr, 0)})
		g.pool.Release(addr)
	case *ast.PairElem:
		addr := g.genPairElemAddr(v)
		g.emit(Instr{Op: Store, Dst: reg, Src2: MemOp(addr, 0)})
		g.pool.Release(addr)
	}
}

func (g *Generator) genArrayLit(v *ast.ArrayLit) Reg {
	n := len(v.Elements)
	elemSize := 4
	if v.RType.Elem != nil {
		elemSize = v.RType.Elem.Size()
	}
	totalSize := 4 + n*elemSize

	ptr := g.pool.Consume()
	g.emit(Instr{Op: Move, Dst: R0, Src2: ImmOp(totalSize)})
	g.emit(Instr{Op: BranchAndLink, Text: "malloc"})
	g.emit(Instr{Op: Move, Dst: ptr, Src2: RegOp(R0)})

	lenReg := g.pool.Consume()
	g.emit(Instr{Op: Move, Dst: lenReg, Src2: ImmOp(n)})
	g.emit(Instr{Op: Store, Dst: lenReg, Src2: MemOp(ptr, 0)})
	g.pool.Release(lenReg)

	for i, el := range v.Elements {
		r := g.genExpr(el)
		g.emit(Instr{Op: Store, Dst: r, Src2: MemOp(ptr, 4+i*elemSize)})
		g.pool.Release(r)
	}
	return ptr
}

func (g *Generator) genNewPair(v *ast.NewPair) Reg {
	ptr := g.pool.Consume()
	g.emit(Instr{Op: Move, Dst: R0, Src2: ImmOp(8)})
	g.emit(Instr{Op: BranchAndLink, Text: "malloc"})
	g.emit(Instr{Op: Move, Dst: ptr, Src2: RegOp(R0)})

	fst := g.genExpr(v.Fst)
	g.emit(Instr{Op: Store, Dst: fst, Src2: MemOp(ptr, 0)})
	g.pool.Release(fst)

	snd := g.genExpr(v.Snd)
	g.emit(Instr{Op: Store, Dst: snd, Src2: MemOp(ptr, 4)})
	g.pool.Release(snd)
	return ptr
}

// genCall evaluates each argument left-to-right, pushing it onto the stack, branches-and-links to
// the callee, restores the stack pointer by the sum of argument sizes, and moves the result out
// of R0 into a fresh register. Each push moves the real stack pointer out from under every
// frame-resident identifier bound before this call, so the frame's bookkeeping is bumped via
// pushTemp after every push, the same discipline declareLocal uses for a real local; without it
// a later argument referencing a local would address an earlier argument's just-pushed copy
// instead of its own slot.
func (g *Generator) genCall(v *ast.Call) Reg {
	total := 0
	for _, arg := range v.Args {
		r := g.genExpr(arg)
		g.emit(Instr{Op: Push, Dst: r})
		g.pool.Release(r)
		size := ExprType(arg).Size()
		g.frame.pushTemp(size)
		total += size
	}
	g.emit(Instr{Op: BranchAndLink, Text: funcLabel(v.Callee)})
	if total > 0 {
		g.emit(Instr{Op: AddInstr, Dst: SP, Src1: SP, Src2: ImmOp(total)})
		g.frame.popTemp(total)
	}
	result := g.pool.Consume()
	g.emit(Instr{Op: Move, Dst: result, Src2: RegOp(R0)})
	return result
}

// appendRuntimeChecks emits the body of every fixed runtime safety-check label referenced during
// generation, each exactly once, funnelling all of them into the shared throwRuntimeError path.
func (g *Generator) appendRuntimeChecks() {
	if g.usedChecks[checkDivideByZero] {
		g.emit(Instr{Op: Label, Text: checkDivideByZero})
		g.emit(Instr{Op: Push, Dst: LR})
		msg := g.strs.Intern("DivideByZeroError: divide or modulo by zero\n")
		g.emit(Instr{Op: LoadAddr, Dst: R0, Text: msg})
		g.emit(Instr{Op: BranchAndLink, Text: throwRuntimeError})
		g.usedChecks[throwRuntimeError] = true
	}
	if g.usedChecks[checkArrayBounds] {
		g.emit(Instr{Op: Label, Text: checkArrayBounds})
		g.emit(Instr{Op: Push, Dst: LR})
		msg := g.strs.Intern("ArrayIndexOutOfBoundsError: index out of bounds\n")
		g.emit(Instr{Op: LoadAddr, Dst: R0, Text: msg})
		g.emit(Instr{Op: BranchAndLink, Text: throwRuntimeError})
		g.usedChecks[throwRuntimeError] = true
	}
	if g.usedChecks[checkNullPointer] {
		g.emit(Instr{Op: Label, Text: checkNullPointer})
		g.emit(Instr{Op: Push, Dst: LR})
		msg := g.strs.Intern("NullReferenceError: dereference of null pair\n")
		g.emit(Instr{Op: LoadAddr, Dst: R0, Text: msg})
		g.emit(Instr{Op: BranchAndLink, Text: throwRuntimeError})
		g.usedChecks[throwRuntimeError] = true
	}
	if g.usedChecks[throwRuntimeError] {
		g.emit(Instr{Op: Label, Text: throwRuntimeError})
		g.emit(Instr{Op: BranchAndLink, Text: "print_string"})
		g.emit(Instr{Op: Move, Dst: R0, Src2: ImmOp(1)})
		g.emit(Instr{Op: BranchAndLink, Text: "exit"})
	}
}
