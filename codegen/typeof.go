package codegen

import (
	"fmt"

	"github.com/student/waccgo/ast"
)

// ExprType reads back the type the semantic pass stamped onto e. Codegen never re-derives types;
// it trusts RType the way xiaobogaga/hack's code generator trusts the checker's annotations.
func ExprType(e ast.Expr) ast.Type {
	switch v := e.(type) {
	case *ast.IntLit:
		return v.RType
	case *ast.BoolLit:
		return v.RType
	case *ast.CharLit:
		return v.RType
	case *ast.StringLit:
		return v.RType
	case *ast.NullLit:
		return v.RType
	case *ast.Ident:
		return v.RType
	case *ast.ArrayElem:
		return v.RType
	case *ast.Paren:
		return ExprType(v.Inner)
	case *ast.UnaryExpr:
		return v.RType
	case *ast.BinaryExpr:
		return v.RType
	default:
		panic(fmt.Sprintf("codegen: unhandled expr type %T", e))
	}
}

// LValueType reads back an l-value's resolved type.
func LValueType(lv ast.LValue) ast.Type {
	switch v := lv.(type) {
	case *ast.Ident:
		return v.RType
	case *ast.ArrayElem:
		return v.RType
	case *ast.PairElem:
		return v.RType
	default:
		panic(fmt.Sprintf("codegen: unhandled lvalue type %T", lv))
	}
}

// RValueType reads back an r-value's resolved type.
func RValueType(rv ast.RValue) ast.Type {
	switch v := rv.(type) {
	case *ast.ArrayLit:
		return v.RType
	case *ast.NewPair:
		return v.RType
	case *ast.Call:
		return v.RType
	case *ast.PairElem:
		return v.RType
	case ast.Expr:
		return ExprType(v)
	default:
		panic(fmt.Sprintf("codegen: unhandled rvalue type %T", rv))
	}
}
