package ast

import "fmt"

// Kind tags the variant of a Type. Array and Pair carry nested payload; the remaining kinds are
// self-contained. Any/Null/Error never appear in user syntax — they are analyser-internal
// wildcards used while checking empty array literals, the null literal, and cascading failures.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindChar
	KindString
	KindArray
	KindPair
	// KindInnerPair is the erased `pair` keyword appearing as a pair-element type, e.g. the `fst`
	// side of `pair(pair, int)`. Nested concrete pair types are not admitted there, only this
	// sentinel, a base type, or an array type.
	KindInnerPair
	// KindAny is the wildcard type of an empty array literal: equivalent to every type.
	KindAny
	// KindNull is the type of the `null` pair literal: equivalent to any PairType.
	KindNull
	// KindError suppresses cascading diagnostics after a local type error has already been
	// reported for a subexpression.
	KindError
)

// Type is a closed tagged union over the source language's type grammar: base types, array
// types (nested via Elem), and pair types (nested via Fst/Snd), plus the three analyser-internal
// sentinels. It is a plain value type so that Equiv can compare types structurally with no
// pointer-identity surprises.
type Type struct {
	Kind Kind
	Elem *Type // valid when Kind == KindArray
	Fst  *Type // valid when Kind == KindPair
	Snd  *Type // valid when Kind == KindPair
}

func Int() Type    { return Type{Kind: KindInt} }
func Bool() Type   { return Type{Kind: KindBool} }
func Char() Type   { return Type{Kind: KindChar} }
func String() Type { return Type{Kind: KindString} }
func Any() Type    { return Type{Kind: KindAny} }
func Null() Type   { return Type{Kind: KindNull} }
func Err() Type    { return Type{Kind: KindError} }
func InnerPair() Type {
	return Type{Kind: KindInnerPair}
}

func Array(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

func Pair(fst, snd Type) Type {
	f, s := fst, snd
	return Type{Kind: KindPair, Fst: &f, Snd: &s}
}

func (t Type) IsArray() bool { return t.Kind == KindArray }
func (t Type) IsPair() bool  { return t.Kind == KindPair }

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindArray:
		return t.Elem.String() + "[]"
	case KindPair:
		return fmt.Sprintf("pair(%s, %s)", t.Fst, t.Snd)
	case KindInnerPair:
		return "pair"
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindError:
		return "<error>"
	default:
		return "<unknown type>"
	}
}

// Equiv implements the "≡" relation. It is symmetric: each special case (Char[] assignable to
// String; Null equivalent to any PairType; Any/Error equivalent to everything) holds with the
// arguments in either order. Every base type is equivalent to itself. Arrays are equivalent elementwise. Pairs
// are equivalent elementwise, with the erased InnerPair element matching any pair-element type at
// the first nesting level (pair structural erasure).
func Equiv(a, b Type) bool {
	if a.Kind == KindAny || b.Kind == KindAny {
		return true
	}
	if a.Kind == KindError || b.Kind == KindError {
		return true
	}
	if a.Kind == KindNull && b.Kind == KindPair {
		return true
	}
	if b.Kind == KindNull && a.Kind == KindPair {
		return true
	}
	if a.Kind == KindNull && b.Kind == KindNull {
		return true
	}
	if a.Kind == KindArray && b.Kind == KindString && isCharArray(a) {
		return true
	}
	if b.Kind == KindArray && a.Kind == KindString && isCharArray(b) {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindArray:
		return Equiv(*a.Elem, *b.Elem)
	case KindPair:
		return pairElemEquiv(*a.Fst, *b.Fst) && pairElemEquiv(*a.Snd, *b.Snd)
	default:
		return true
	}
}

func isCharArray(t Type) bool {
	return t.Kind == KindArray && t.Elem != nil && t.Elem.Kind == KindChar
}

// pairElemEquiv equates InnerPair (the erased pair-element position) with any pair-element type,
// implementing first-level pair structural erasure.
func pairElemEquiv(a, b Type) bool {
	if a.Kind == KindInnerPair && (b.Kind == KindPair || b.Kind == KindInnerPair) {
		return true
	}
	if b.Kind == KindInnerPair && (a.Kind == KindPair || a.Kind == KindInnerPair) {
		return true
	}
	return Equiv(a, b)
}

// Size is the stack/word footprint of a type on the 32-bit little-endian target: Int is 4 bytes,
// Bool and Char are 1 byte, everything else (String, Array, Pair) is a 4-byte pointer.
func (t Type) Size() int {
	switch t.Kind {
	case KindBool, KindChar:
		return 1
	default:
		return 4
	}
}
