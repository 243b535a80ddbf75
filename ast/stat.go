package ast

// Stat is the tagged union of statement forms. Every concrete statement type below implements it.
type Stat interface {
	Pos() Position
	stat()
}

type SkipStat struct{ At Position }

func (s *SkipStat) Pos() Position { return s.At }
func (*SkipStat) stat()           {}

// DeclareStat is `type name = rvalue`.
type DeclareStat struct {
	At    Position
	Type  Type
	Name  string
	Value RValue
}

func (s *DeclareStat) Pos() Position { return s.At }
func (*DeclareStat) stat()           {}

// AssignStat is `lvalue = rvalue`.
type AssignStat struct {
	At     Position
	Target LValue
	Value  RValue
}

func (s *AssignStat) Pos() Position { return s.At }
func (*AssignStat) stat()           {}

type ReadStat struct {
	At     Position
	Target LValue
}

func (s *ReadStat) Pos() Position { return s.At }
func (*ReadStat) stat()           {}

type FreeStat struct {
	At    Position
	Value Expr
}

func (s *FreeStat) Pos() Position { return s.At }
func (*FreeStat) stat()           {}

// ReturnStat is only valid inside a function body; a Return in the program body is a semantic
// error (UnexpectedReturn), not a parse error.
type ReturnStat struct {
	At    Position
	Value Expr
}

func (s *ReturnStat) Pos() Position { return s.At }
func (*ReturnStat) stat()           {}

type ExitStat struct {
	At    Position
	Value Expr
}

func (s *ExitStat) Pos() Position { return s.At }
func (*ExitStat) stat()           {}

type PrintStat struct {
	At    Position
	Value Expr
}

func (s *PrintStat) Pos() Position { return s.At }
func (*PrintStat) stat()           {}

type PrintlnStat struct {
	At    Position
	Value Expr
}

func (s *PrintlnStat) Pos() Position { return s.At }
func (*PrintlnStat) stat()           {}

type IfStat struct {
	At   Position
	Cond Expr
	Then []Stat
	Else []Stat
}

func (s *IfStat) Pos() Position { return s.At }
func (*IfStat) stat()           {}

type WhileStat struct {
	At   Position
	Cond Expr
	Body []Stat
}

func (s *WhileStat) Pos() Position { return s.At }
func (*WhileStat) stat()           {}

// ScopeStat is a bare `begin ... end` block introducing a fresh scope with no other semantics.
type ScopeStat struct {
	At   Position
	Body []Stat
}

func (s *ScopeStat) Pos() Position { return s.At }
func (*ScopeStat) stat()           {}
