// Package parser builds an *ast.Program from a token.Token stream by recursive descent, one
// function per grammar production, in the same top-down style as xiaobogaga/hack's compiler
// package (ParseClassDeclaration/ParseStatement/...). Parsing stops at the first error: there is
// no error-recovery/resynchronization pass, matching the teacher's single-pass compiler.Compile.
package parser

import (
	"fmt"
	"strconv"

	"github.com/student/waccgo/ast"
	"github.com/student/waccgo/token"
)

// Error is a syntax error: an unexpected token at a given position.
type Error struct {
	At  ast.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.At, e.Msg)
}

type parser struct {
	toks []token.Token
	pos  int
}

// Parse tokenizes-consumed Tokens (already produced by lexer.Tokenize, EOF-terminated) into a
// Program, or the first syntax error encountered.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := &parser{toks: toks}
	return p.parseProgram()
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) peek() token.Type  { return p.toks[p.pos].Type }
func (p *parser) at() ast.Position  { return p.toks[p.pos].At }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &Error{At: p.at(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tp token.Type) (token.Token, error) {
	if p.peek() != tp {
		return token.Token{}, p.errorf("expected %s, got %s", tp, p.peek())
	}
	return p.advance(), nil
}

// attempt runs fn against a checkpointed position, rolling back on failure. It is the one piece
// of backtracking the grammar needs: distinguishing a function definition from a declare
// statement requires parsing a full Type and an Ident before the deciding token (`(` vs `=`)
// is visible.
func (p *parser) attempt(fn func() error) bool {
	save := p.pos
	if err := fn(); err != nil {
		p.pos = save
		return false
	}
	return true
}

func (p *parser) isTypeStart() bool {
	switch p.peek() {
	case token.Int, token.Bool, token.Char, token.String, token.Pair:
		return true
	default:
		return false
	}
}

// isFuncStart is pure lookahead: the position is restored whether or not a function header follows.
func (p *parser) isFuncStart() bool {
	if !p.isTypeStart() {
		return false
	}
	save := p.pos
	defer func() { p.pos = save }()
	return p.attempt(func() error {
		if _, err := p.parseType(); err != nil {
			return err
		}
		if _, err := p.expect(token.Ident); err != nil {
			return err
		}
		if p.peek() != token.LParen {
			return p.errorf("not a function header")
		}
		return nil
	})
}

func (p *parser) parseProgram() (*ast.Program, error) {
	if _, err := p.expect(token.Begin); err != nil {
		return nil, err
	}
	var funcs []*ast.Func
	for p.isFuncStart() {
		fn, err := p.parseFunc()
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	body, err := p.parseStatList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	if p.peek() != token.EOF {
		return nil, p.errorf("unexpected %s after program end", p.peek())
	}
	return &ast.Program{Funcs: funcs, Body: body}, nil
}

func (p *parser) parseFunc() (*ast.Func, error) {
	at := p.at()
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if p.peek() != token.RParen {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		for p.peek() == token.Comma {
			p.advance()
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Is); err != nil {
		return nil, err
	}
	body, err := p.parseStatList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.Func{At: at, ReturnType: retType, Name: name.Text, Params: params, Body: body}, nil
}

func (p *parser) parseParam() (*ast.Param, error) {
	at := p.at()
	tp, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	return &ast.Param{At: at, Type: tp, Name: name.Text}, nil
}

// parseType parses a full type: a base type or a concrete pair type, followed by any number of
// `[]` array suffixes.
func (p *parser) parseType() (ast.Type, error) {
	base, err := p.parseNonArrayType()
	if err != nil {
		return ast.Type{}, err
	}
	for p.peek() == token.LBracket {
		p.advance()
		if _, err := p.expect(token.RBracket); err != nil {
			return ast.Type{}, err
		}
		base = ast.Array(base)
	}
	return base, nil
}

func (p *parser) parseNonArrayType() (ast.Type, error) {
	switch p.peek() {
	case token.Int:
		p.advance()
		return ast.Int(), nil
	case token.Bool:
		p.advance()
		return ast.Bool(), nil
	case token.Char:
		p.advance()
		return ast.Char(), nil
	case token.String:
		p.advance()
		return ast.String(), nil
	case token.Pair:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return ast.Type{}, err
		}
		fst, err := p.parsePairElemType()
		if err != nil {
			return ast.Type{}, err
		}
		if _, err := p.expect(token.Comma); err != nil {
			return ast.Type{}, err
		}
		snd, err := p.parsePairElemType()
		if err != nil {
			return ast.Type{}, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return ast.Type{}, err
		}
		return ast.Pair(fst, snd), nil
	default:
		return ast.Type{}, p.errorf("expected a type, got %s", p.peek())
	}
}

// parsePairElemType parses a pair-element-type: a base type, an array type, or the bare `pair`
// keyword (the erased InnerPair sentinel — a concrete `pair(x, y)` is not admitted here).
func (p *parser) parsePairElemType() (ast.Type, error) {
	var base ast.Type
	switch p.peek() {
	case token.Int:
		p.advance()
		base = ast.Int()
	case token.Bool:
		p.advance()
		base = ast.Bool()
	case token.Char:
		p.advance()
		base = ast.Char()
	case token.String:
		p.advance()
		base = ast.String()
	case token.Pair:
		p.advance()
		base = ast.InnerPair()
	default:
		return ast.Type{}, p.errorf("expected a type, got %s", p.peek())
	}
	for p.peek() == token.LBracket {
		p.advance()
		if _, err := p.expect(token.RBracket); err != nil {
			return ast.Type{}, err
		}
		base = ast.Array(base)
	}
	return base, nil
}

func (p *parser) parseStatList() ([]ast.Stat, error) {
	var stats []ast.Stat
	for {
		s, err := p.parseStat()
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
		if p.peek() != token.Semicolon {
			break
		}
		p.advance()
	}
	return stats, nil
}

func (p *parser) parseStat() (ast.Stat, error) {
	at := p.at()
	switch p.peek() {
	case token.Skip:
		p.advance()
		return &ast.SkipStat{At: at}, nil
	case token.Int, token.Bool, token.Char, token.String, token.Pair:
		tp, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}
		rv, err := p.parseAssignRHS()
		if err != nil {
			return nil, err
		}
		return &ast.DeclareStat{At: at, Type: tp, Name: name.Text, Value: rv}, nil
	case token.Read:
		p.advance()
		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return &ast.ReadStat{At: at, Target: lv}, nil
	case token.Free:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.FreeStat{At: at, Value: e}, nil
	case token.Return:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStat{At: at, Value: e}, nil
	case token.Exit:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExitStat{At: at, Value: e}, nil
	case token.Print:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.PrintStat{At: at, Value: e}, nil
	case token.Println:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.PrintlnStat{At: at, Value: e}, nil
	case token.If:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Then); err != nil {
			return nil, err
		}
		thenB, err := p.parseStatList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Else); err != nil {
			return nil, err
		}
		elseB, err := p.parseStatList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Fi); err != nil {
			return nil, err
		}
		return &ast.IfStat{At: at, Cond: cond, Then: thenB, Else: elseB}, nil
	case token.While:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Do); err != nil {
			return nil, err
		}
		body, err := p.parseStatList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Done); err != nil {
			return nil, err
		}
		return &ast.WhileStat{At: at, Cond: cond, Body: body}, nil
	case token.Begin:
		p.advance()
		body, err := p.parseStatList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.End); err != nil {
			return nil, err
		}
		return &ast.ScopeStat{At: at, Body: body}, nil
	default:
		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Assign); err != nil {
			return nil, err
		}
		rv, err := p.parseAssignRHS()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStat{At: at, Target: lv, Value: rv}, nil
	}
}

func (p *parser) parseLValue() (ast.LValue, error) {
	at := p.at()
	switch p.peek() {
	case token.Fst, token.Snd:
		sel := ast.Fst
		if p.peek() == token.Snd {
			sel = ast.Snd
		}
		p.advance()
		inner, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return &ast.PairElem{At: at, Selector: sel, Inner: inner}, nil
	case token.Ident:
		name := p.advance()
		if p.peek() != token.LBracket {
			return &ast.Ident{At: at, Name: name.Text}, nil
		}
		var indices []ast.Expr
		for p.peek() == token.LBracket {
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			indices = append(indices, idx)
		}
		return &ast.ArrayElem{At: at, Name: name.Text, Indices: indices}, nil
	default:
		return nil, p.errorf("expected a variable, array element or pair element, got %s", p.peek())
	}
}

func (p *parser) parseAssignRHS() (ast.RValue, error) {
	at := p.at()
	switch p.peek() {
	case token.LBracket:
		p.advance()
		var elems []ast.Expr
		if p.peek() != token.RBracket {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			for p.peek() == token.Comma {
				p.advance()
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayLit{At: at, Elements: elems}, nil
	case token.Newpair:
		p.advance()
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		fst, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Comma); err != nil {
			return nil, err
		}
		snd, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.NewPair{At: at, Fst: fst, Snd: snd}, nil
	case token.Call:
		p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		var args []ast.Expr
		if p.peek() != token.RParen {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, e)
			for p.peek() == token.Comma {
				p.advance()
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, e)
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Call{At: at, Callee: name.Text, Args: args}, nil
	case token.Fst, token.Snd:
		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		return lv.(*ast.PairElem), nil
	default:
		return p.parseExpr()
	}
}

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == token.OrOr {
		at := p.at()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek() == token.AndAnd {
		at := p.at()
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.peek() == token.EqualEqual || p.peek() == token.NotEqual {
		at := p.at()
		op := ast.Equal
		if p.peek() == token.NotEqual {
			op = ast.NotEqual
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek() {
		case token.Lt:
			op = ast.Lt
		case token.Le:
			op = ast.Le
		case token.Gt:
			op = ast.Gt
		case token.Ge:
			op = ast.Ge
		default:
			return left, nil
		}
		at := p.at()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek() == token.Plus || p.peek() == token.Minus {
		at := p.at()
		op := ast.Add
		if p.peek() == token.Minus {
			op = ast.Sub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek() {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		default:
			return left, nil
		}
		at := p.at()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{At: at, Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch p.peek() {
	case token.Not:
		op = ast.Not
	case token.Minus:
		op = ast.Negate
	case token.Len:
		op = ast.Len
	case token.Ord:
		op = ast.Ord
	case token.Chr:
		op = ast.Chr
	default:
		return p.parseAtom()
	}
	at := p.at()
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{At: at, Op: op, Operand: operand}, nil
}

func (p *parser) parseAtom() (ast.Expr, error) {
	at := p.at()
	switch p.peek() {
	case token.IntLiteral:
		tok := p.advance()
		v, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Text)
		}
		return &ast.IntLit{At: at, Value: v}, nil
	case token.BoolLiteral:
		tok := p.advance()
		return &ast.BoolLit{At: at, Value: tok.Text == "true"}, nil
	case token.CharLiteral:
		tok := p.advance()
		return &ast.CharLit{At: at, Value: tok.Text[0]}, nil
	case token.StringLiteral:
		tok := p.advance()
		return &ast.StringLit{At: at, Value: tok.Text}, nil
	case token.Null:
		p.advance()
		return &ast.NullLit{At: at}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Paren{At: at, Inner: inner}, nil
	case token.Ident:
		name := p.advance()
		if p.peek() != token.LBracket {
			return &ast.Ident{At: at, Name: name.Text}, nil
		}
		var indices []ast.Expr
		for p.peek() == token.LBracket {
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			indices = append(indices, idx)
		}
		return &ast.ArrayElem{At: at, Name: name.Text, Indices: indices}, nil
	default:
		return nil, p.errorf("expected an expression, got %s", p.peek())
	}
}
