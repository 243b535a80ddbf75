// Package semantic resolves names, checks types, and builds the print table for an *ast.Program,
// in the single-pass, error-accumulating style of xiaobogaga/hack's type_checker.go
// (getAndCheckExpressionType threading a best-effort type through every failure so sibling
// subtrees still get checked).
package semantic

import (
	"fmt"

	"github.com/student/waccgo/ast"
)

// PrintTable maps a Print/Println operand's source position to its resolved type, letting the
// code generator pick the right runtime print routine without re-deriving types.
type PrintTable map[ast.Position]ast.Type

// Result is everything semantic analysis produces: the accumulated diagnostics (empty on success)
// and the print table. Analysis always walks the whole program; there is no early-exit threshold.
type Result struct {
	Diagnostics []*Diagnostic
	PrintTable  PrintTable
}

// Analyser carries the traversal's shared state: the function table (built up front and immutable
// thereafter), the accumulated diagnostics and print table, and the current function's signature
// (nil while walking the program body, where `return` is not allowed). The current scope chain is
// not a field; it is passed to each check method as an argument.
type Analyser struct {
	funcs      map[string]FuncSig
	diags      []*Diagnostic
	printTable PrintTable
	curFunc    *FuncSig
}

// Run performs full semantic analysis of prog and returns the accumulated Result.
func Run(prog *ast.Program) *Result {
	a := &Analyser{funcs: map[string]FuncSig{}, printTable: PrintTable{}}
	a.registerFuncs(prog.Funcs)
	for _, fn := range prog.Funcs {
		a.checkFunc(fn)
	}
	a.checkStatList(prog.Body, newScope(nil))
	return &Result{Diagnostics: a.diags, PrintTable: a.printTable}
}

func (a *Analyser) report(d *Diagnostic) { a.diags = append(a.diags, d) }

func (a *Analyser) registerFuncs(funcs []*ast.Func) {
	for _, fn := range funcs {
		if _, exists := a.funcs[fn.Name]; exists {
			a.report(&Diagnostic{Kind: RedefinedFunction, At: fn.At, Context: fn.Name})
			continue
		}
		params := make([]ast.Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
		}
		a.funcs[fn.Name] = FuncSig{ReturnType: fn.ReturnType, Params: params}
	}
}

func (a *Analyser) checkFunc(fn *ast.Func) {
	sig := a.funcs[fn.Name]
	a.curFunc = &sig
	s := newScope(nil)
	for _, p := range fn.Params {
		if !s.declare(p.Name, p.Type) {
			a.report(&Diagnostic{Kind: RedefinedVariable, At: p.At, Context: p.Name})
		}
	}
	a.checkStatList(fn.Body, s)
	a.curFunc = nil
}

func (a *Analyser) checkStatList(stats []ast.Stat, s *scope) {
	for _, stat := range stats {
		a.checkStat(stat, s)
	}
}

func (a *Analyser) checkStat(stat ast.Stat, s *scope) {
	switch st := stat.(type) {
	case *ast.SkipStat:
	case *ast.DeclareStat:
		rt := a.typeOfRValue(st.Value, s)
		if !s.declare(st.Name, st.Type) {
			a.report(&Diagnostic{Kind: RedefinedVariable, At: st.At, Context: st.Name})
		}
		if !ast.Equiv(rt, st.Type) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.Value.Pos(), Got: &rt, Expected: []ast.Type{st.Type},
				Context: fmt.Sprintf("declaration of %s", st.Name),
			})
		}
	case *ast.AssignStat:
		a.checkAssign(st, s)
	case *ast.ReadStat:
		lt := a.typeOfLValue(st.Target, s)
		if !ast.Equiv(lt, ast.Int()) && !ast.Equiv(lt, ast.Char()) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.At, Got: &lt, Expected: []ast.Type{ast.Int(), ast.Char()},
				Context: "read target",
			})
		}
	case *ast.FreeStat:
		t := a.typeOfExpr(st.Value, s)
		if !t.IsArray() && !t.IsPair() && t.Kind != ast.KindNull && t.Kind != ast.KindError {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.At, Got: &t,
				Expected: []ast.Type{ast.Array(ast.Any()), ast.Pair(ast.Any(), ast.Any())},
				Context:  "free operand",
			})
		}
	case *ast.ReturnStat:
		t := a.typeOfExpr(st.Value, s)
		if a.curFunc == nil {
			a.report(&Diagnostic{Kind: UnexpectedReturn, At: st.At})
		} else if !ast.Equiv(t, a.curFunc.ReturnType) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.Value.Pos(), Got: &t, Expected: []ast.Type{a.curFunc.ReturnType},
				Context: "return",
			})
		}
	case *ast.ExitStat:
		t := a.typeOfExpr(st.Value, s)
		if !ast.Equiv(t, ast.Int()) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.Value.Pos(), Got: &t, Expected: []ast.Type{ast.Int()}, Context: "exit code",
			})
		}
	case *ast.PrintStat:
		t := a.typeOfExpr(st.Value, s)
		a.printTable[st.Value.Pos()] = t
	case *ast.PrintlnStat:
		t := a.typeOfExpr(st.Value, s)
		a.printTable[st.Value.Pos()] = t
	case *ast.IfStat:
		ct := a.typeOfExpr(st.Cond, s)
		if !ast.Equiv(ct, ast.Bool()) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.Cond.Pos(), Got: &ct, Expected: []ast.Type{ast.Bool()}, Context: "if condition",
			})
		}
		a.checkStatList(st.Then, newScope(s))
		a.checkStatList(st.Else, newScope(s))
	case *ast.WhileStat:
		ct := a.typeOfExpr(st.Cond, s)
		if !ast.Equiv(ct, ast.Bool()) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: st.Cond.Pos(), Got: &ct, Expected: []ast.Type{ast.Bool()}, Context: "while condition",
			})
		}
		a.checkStatList(st.Body, newScope(s))
	case *ast.ScopeStat:
		a.checkStatList(st.Body, newScope(s))
	default:
		panic(fmt.Sprintf("semantic: unhandled statement type %T", stat))
	}
}

// checkAssign special-cases two pair-elements whose concrete element type cannot be derived from
// either side (both chase through `null` or an erased InnerPair): at least one side must
// disambiguate the element type, or an assignment between them is meaningless.
func (a *Analyser) checkAssign(st *ast.AssignStat, s *scope) {
	lt := a.typeOfLValue(st.Target, s)
	rt := a.typeOfRValue(st.Value, s)
	if isAmbiguousPairElem(st.Target, lt) && isAmbiguousPairElem(st.Value, rt) {
		a.report(&Diagnostic{
			Kind: TypeMismatch, At: st.At,
			Context: "both sides of this assignment are pair elements of unresolved type; give at least one a concrete pair type",
		})
		return
	}
	if !ast.Equiv(lt, rt) {
		a.report(&Diagnostic{Kind: TypeMismatch, At: st.Value.Pos(), Got: &rt, Expected: []ast.Type{lt}, Context: "assignment"})
	}
}

func isAmbiguousPairElem(v interface{}, t ast.Type) bool {
	_, ok := v.(*ast.PairElem)
	return ok && t.Kind == ast.KindAny
}

func (a *Analyser) typeOfLValue(lv ast.LValue, s *scope) ast.Type {
	switch v := lv.(type) {
	case *ast.Ident:
		return a.typeOfIdent(v, s)
	case *ast.ArrayElem:
		return a.typeOfArrayElem(v, s)
	case *ast.PairElem:
		return a.typeOfPairElem(v, s)
	default:
		panic(fmt.Sprintf("semantic: unhandled lvalue type %T", lv))
	}
}

func (a *Analyser) typeOfRValue(rv ast.RValue, s *scope) ast.Type {
	switch v := rv.(type) {
	case *ast.ArrayLit:
		return a.typeOfArrayLit(v, s)
	case *ast.NewPair:
		return a.typeOfNewPair(v, s)
	case *ast.Call:
		return a.typeOfCall(v, s)
	case *ast.PairElem:
		return a.typeOfPairElem(v, s)
	case ast.Expr:
		return a.typeOfExpr(v, s)
	default:
		panic(fmt.Sprintf("semantic: unhandled rvalue type %T", rv))
	}
}

func (a *Analyser) typeOfExpr(e ast.Expr, s *scope) ast.Type {
	switch v := e.(type) {
	case *ast.IntLit:
		v.RType = ast.Int()
		return v.RType
	case *ast.BoolLit:
		v.RType = ast.Bool()
		return v.RType
	case *ast.CharLit:
		v.RType = ast.Char()
		return v.RType
	case *ast.StringLit:
		v.RType = ast.String()
		return v.RType
	case *ast.NullLit:
		v.RType = ast.Null()
		return v.RType
	case *ast.Ident:
		return a.typeOfIdent(v, s)
	case *ast.ArrayElem:
		return a.typeOfArrayElem(v, s)
	case *ast.Paren:
		return a.typeOfExpr(v.Inner, s)
	case *ast.UnaryExpr:
		return a.typeOfUnary(v, s)
	case *ast.BinaryExpr:
		return a.typeOfBinary(v, s)
	default:
		panic(fmt.Sprintf("semantic: unhandled expr type %T", e))
	}
}

func (a *Analyser) typeOfIdent(v *ast.Ident, s *scope) ast.Type {
	t, ok := s.lookup(v.Name)
	if !ok {
		a.report(&Diagnostic{Kind: UndefinedVariable, At: v.At, Context: v.Name})
		v.RType = ast.Err()
		return v.RType
	}
	v.RType = t
	return t
}

func (a *Analyser) typeOfArrayElem(v *ast.ArrayElem, s *scope) ast.Type {
	base, ok := s.lookup(v.Name)
	if !ok {
		a.report(&Diagnostic{Kind: UndefinedVariable, At: v.At, Context: v.Name})
		v.RType = ast.Err()
		return v.RType
	}
	cur := base
	for i, idx := range v.Indices {
		it := a.typeOfExpr(idx, s)
		if !ast.Equiv(it, ast.Int()) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: idx.Pos(), Got: &it, Expected: []ast.Type{ast.Int()},
				Context: fmt.Sprintf("index %d of %s", i+1, v.Name),
			})
		}
		if !cur.IsArray() {
			a.report(&Diagnostic{
				Kind: ArrayDimensionMismatch, At: v.At,
				Context: fmt.Sprintf("%s is not indexable to depth %d", v.Name, i+1),
			})
			cur = ast.Err()
			break
		}
		cur = *cur.Elem
	}
	v.RType = cur
	return cur
}

func (a *Analyser) typeOfUnary(v *ast.UnaryExpr, s *scope) ast.Type {
	ot := a.typeOfExpr(v.Operand, s)
	var want ast.Type
	var result ast.Type
	ok := true
	switch v.Op {
	case ast.Not:
		want, result = ast.Bool(), ast.Bool()
		ok = ast.Equiv(ot, want)
	case ast.Negate:
		want, result = ast.Int(), ast.Int()
		ok = ast.Equiv(ot, want)
	case ast.Len:
		result = ast.Int()
		ok = ot.IsArray() || ot.Kind == ast.KindError
		want = ast.Array(ast.Any())
	case ast.Ord:
		want, result = ast.Char(), ast.Int()
		ok = ast.Equiv(ot, want)
	case ast.Chr:
		want, result = ast.Int(), ast.Char()
		ok = ast.Equiv(ot, want)
	}
	if !ok {
		a.report(&Diagnostic{Kind: TypeMismatch, At: v.Operand.Pos(), Got: &ot, Expected: []ast.Type{want}, Context: "unary operand"})
		v.RType = ast.Err()
		return v.RType
	}
	v.RType = result
	return result
}

func (a *Analyser) typeOfBinary(v *ast.BinaryExpr, s *scope) ast.Type {
	lt := a.typeOfExpr(v.Left, s)
	rt := a.typeOfExpr(v.Right, s)
	fail := func(expected ...ast.Type) ast.Type {
		a.report(&Diagnostic{Kind: TypeMismatch, At: v.At, Got: &rt, Expected: expected, Context: "binary operator operand"})
		v.RType = ast.Err()
		return v.RType
	}
	switch v.Op {
	case ast.Mul, ast.Div, ast.Mod, ast.Add, ast.Sub:
		if !ast.Equiv(lt, ast.Int()) || !ast.Equiv(rt, ast.Int()) {
			return fail(ast.Int())
		}
		v.RType = ast.Int()
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		intPair := ast.Equiv(lt, ast.Int()) && ast.Equiv(rt, ast.Int())
		charPair := ast.Equiv(lt, ast.Char()) && ast.Equiv(rt, ast.Char())
		if !intPair && !charPair {
			return fail(ast.Int(), ast.Char())
		}
		v.RType = ast.Bool()
	case ast.Equal, ast.NotEqual:
		if !ast.Equiv(lt, rt) {
			return fail(lt)
		}
		v.RType = ast.Bool()
	case ast.And, ast.Or:
		if !ast.Equiv(lt, ast.Bool()) || !ast.Equiv(rt, ast.Bool()) {
			return fail(ast.Bool())
		}
		v.RType = ast.Bool()
	}
	return v.RType
}

func (a *Analyser) typeOfArrayLit(v *ast.ArrayLit, s *scope) ast.Type {
	if len(v.Elements) == 0 {
		v.RType = ast.Array(ast.Any())
		return v.RType
	}
	first := a.typeOfExpr(v.Elements[0], s)
	for _, el := range v.Elements[1:] {
		t := a.typeOfExpr(el, s)
		if !ast.Equiv(t, first) {
			a.report(&Diagnostic{Kind: TypeMismatch, At: el.Pos(), Got: &t, Expected: []ast.Type{first}, Context: "array literal element"})
		}
	}
	v.RType = ast.Array(first)
	return v.RType
}

// eraseInner collapses a concrete pair (or null) type down to the InnerPair sentinel, the first-
// level pair structural erasure NewPair's result type applies to each of its two elements.
func eraseInner(t ast.Type) ast.Type {
	if t.Kind == ast.KindPair || t.Kind == ast.KindNull {
		return ast.InnerPair()
	}
	return t
}

func (a *Analyser) typeOfNewPair(v *ast.NewPair, s *scope) ast.Type {
	fst := a.typeOfExpr(v.Fst, s)
	snd := a.typeOfExpr(v.Snd, s)
	v.RType = ast.Pair(eraseInner(fst), eraseInner(snd))
	return v.RType
}

func (a *Analyser) typeOfCall(v *ast.Call, s *scope) ast.Type {
	sig, ok := a.funcs[v.Callee]
	if !ok {
		a.report(&Diagnostic{Kind: UndefinedFunction, At: v.At, Context: v.Callee})
		for _, arg := range v.Args {
			a.typeOfExpr(arg, s)
		}
		v.RType = ast.Err()
		return v.RType
	}
	if len(v.Args) != len(sig.Params) {
		a.report(&Diagnostic{
			Kind: IncorrectNumberOfArgs, At: v.At,
			Context: fmt.Sprintf("%s: got %d argument(s), expected %d", v.Callee, len(v.Args), len(sig.Params)),
		})
	}
	n := len(v.Args)
	if len(sig.Params) < n {
		n = len(sig.Params)
	}
	for i := 0; i < n; i++ {
		t := a.typeOfExpr(v.Args[i], s)
		if !ast.Equiv(t, sig.Params[i]) {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: v.Args[i].Pos(), Got: &t, Expected: []ast.Type{sig.Params[i]},
				Context: fmt.Sprintf("argument %d of %s", i+1, v.Callee),
			})
		}
	}
	for i := n; i < len(v.Args); i++ {
		a.typeOfExpr(v.Args[i], s)
	}
	v.RType = sig.ReturnType
	return v.RType
}

func (a *Analyser) typeOfPairElem(v *ast.PairElem, s *scope) ast.Type {
	inner := a.typeOfLValue(v.Inner, s)
	if inner.Kind == ast.KindNull || inner.Kind == ast.KindInnerPair {
		v.RType = ast.Any()
		return v.RType
	}
	if !inner.IsPair() {
		if inner.Kind != ast.KindError {
			a.report(&Diagnostic{
				Kind: TypeMismatch, At: v.At, Got: &inner, Expected: []ast.Type{ast.Pair(ast.Any(), ast.Any())},
				Context: fmt.Sprintf("%s operand", v.Selector),
			})
		}
		v.RType = ast.Err()
		return v.RType
	}
	if v.Selector == ast.Fst {
		v.RType = *inner.Fst
	} else {
		v.RType = *inner.Snd
	}
	return v.RType
}
