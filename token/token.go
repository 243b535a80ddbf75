// Package token defines the token classes consumed by the parser. Lexical scanning internals
// (beyond these classes) are out of scope for this module's specification — this package only
// fixes the vocabulary the parser and lexer agree on.
package token

import "github.com/student/waccgo/ast"

type Type int

const (
	EOF Type = iota

	// Keywords
	Begin
	End
	Is
	Skip
	Read
	Free
	Return
	Exit
	Print
	Println
	If
	Then
	Else
	Fi
	While
	Do
	Done
	Newpair
	Call
	Fst
	Snd
	Int
	Bool
	Char
	String
	Pair
	Len
	Ord
	Chr
	True
	False
	Null

	// Literals and identifiers
	IntLiteral
	BoolLiteral
	CharLiteral
	StringLiteral
	Ident

	// Symbols
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Assign
	Not
	Plus
	Minus
	Star
	Slash
	Percent
	Lt
	Le
	Gt
	Ge
	EqualEqual
	NotEqual
	AndAnd
	OrOr
)

var names = map[Type]string{
	EOF: "end of file", Begin: "begin", End: "end", Is: "is", Skip: "skip", Read: "read",
	Free: "free", Return: "return", Exit: "exit", Print: "print", Println: "println", If: "if",
	Then: "then", Else: "else", Fi: "fi", While: "while", Do: "do", Done: "done",
	Newpair: "newpair", Call: "call", Fst: "fst", Snd: "snd", Int: "int", Bool: "bool",
	Char: "char", String: "string", Pair: "pair", Len: "len", Ord: "ord", Chr: "chr",
	True: "true", False: "false", Null: "null", IntLiteral: "integer literal",
	BoolLiteral: "boolean literal", CharLiteral: "character literal",
	StringLiteral: "string literal", Ident: "identifier", LParen: "(", RParen: ")",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";", Assign: "=", Not: "!",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Lt: "<", Le: "<=", Gt: ">",
	Ge: ">=", EqualEqual: "==", NotEqual: "!=", AndAnd: "&&", OrOr: "||",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "<unknown token>"
}

// Keywords maps the language's reserved words to their token type, checked before an identifier
// is accepted as Ident.
var Keywords = map[string]Type{
	"begin": Begin, "end": End, "is": Is, "skip": Skip, "read": Read, "free": Free,
	"return": Return, "exit": Exit, "print": Print, "println": Println, "if": If,
	"then": Then, "else": Else, "fi": Fi, "while": While, "do": Do, "done": Done,
	"newpair": Newpair, "call": Call, "fst": Fst, "snd": Snd, "int": Int, "bool": Bool,
	"char": Char, "string": String, "pair": Pair, "len": Len, "ord": Ord, "chr": Chr,
	"true": True, "false": False, "null": Null,
}

// Token is one lexeme: its class, its raw text, and the position of its first character.
type Token struct {
	Type Type
	Text string
	At   ast.Position
}
