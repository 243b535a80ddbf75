package semantic

import "github.com/student/waccgo/ast"

// scope is one block's variable frame, chained to its enclosing scope. Lookup falls through to
// parents; declare only ever inspects the local frame, so a name may shadow an outer binding but
// never silently overwrite one declared earlier in the same block.
type scope struct {
	parent *scope
	vars   map[string]ast.Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: map[string]ast.Type{}}
}

func (s *scope) lookup(name string) (ast.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return ast.Type{}, false
}

// declare binds name in this frame. It reports false (and leaves the existing binding intact) if
// name is already bound in this same frame.
func (s *scope) declare(name string, t ast.Type) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = t
	return true
}

// FuncSig is a function's registered signature: its parameter types in source order and its
// declared return type.
type FuncSig struct {
	ReturnType ast.Type
	Params     []ast.Type
}
