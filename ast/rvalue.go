package ast

// RValue is the tagged union of things a Declare/Assign/Call-argument can produce a value from:
// any Expr, an ArrayLit, a NewPair, a Call, or a PairElem read.
type RValue interface {
	Pos() Position
	rvalue()
}

// ArrayLit is `[e1, e2, ...]`. An empty literal has Elements == nil and is typed ArrayType(Any)
// by the semantic analyser.
type ArrayLit struct {
	At       Position
	Elements []Expr
	RType    Type
}

func (a *ArrayLit) Pos() Position { return a.At }
func (*ArrayLit) rvalue()         {}

// NewPair is `newpair(fst, snd)`.
type NewPair struct {
	At       Position
	Fst, Snd Expr
	RType    Type
}

func (p *NewPair) Pos() Position { return p.At }
func (*NewPair) rvalue()         {}

// Call is `call f(args)`. Callee is always a non-empty function name: the source grammar has no
// indirect/function-pointer call form (Open Question resolved — see DESIGN.md).
type Call struct {
	At     Position
	Callee string
	Args   []Expr
	RType  Type
}

func (c *Call) Pos() Position { return c.At }
func (*Call) rvalue()         {}
