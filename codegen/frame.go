package codegen

import "github.com/student/waccgo/ast"

// originalSPKey is the distinguished ident-to-offset entry capturing the stack-pointer-offset at
// body start, letting a block scope roll the frame back after its own inner declarations.
const originalSPKey = "\x00originalSP"

// frame is one callable's stack layout: the live stack-pointer-offset (bytes pushed since entry),
// the mapping from in-scope identifier to its offset from the current stack pointer, and each identifier's
// declared type (needed to size array-element addressing and call argument marshalling).
type frame struct {
	offsets  map[string]int
	types    map[string]ast.Type
	spOffset int
}

func newFrame() *frame {
	return &frame{offsets: map[string]int{}, types: map[string]ast.Type{}}
}

// enter records the pushed link register and marks originalSP for this body.
func (f *frame) enter() {
	f.spOffset += 4
	f.offsets[originalSPKey] = f.spOffset
}

// originalSP is the stack-pointer-offset recorded at enter(), the floor a `return` or fall-through
// epilogue restores the stack to before popping the link register.
func (f *frame) originalSP() int { return f.offsets[originalSPKey] }

// bindParams records each parameter's offset in source order: the caller pushed them left-to-
// right before the BL, so they sit at successively higher offsets above the callee's own frame.
func (f *frame) bindParams(params []paramBinding) {
	off := f.spOffset
	for _, p := range params {
		off += p.Size
		f.offsets[p.Name] = off
		f.types[p.Name] = p.Type
	}
}

type paramBinding struct {
	Name string
	Size int
	Type ast.Type
}

// frameMark is a restore point for a block scope: the bindings and stack-pointer-offset as they
// stood at scope entry.
type frameMark struct {
	offsets  map[string]int
	types    map[string]ast.Type
	spOffset int
}

func (f *frame) mark() frameMark {
	offsets := make(map[string]int, len(f.offsets))
	for k, v := range f.offsets {
		offsets[k] = v
	}
	types := make(map[string]ast.Type, len(f.types))
	for k, v := range f.types {
		types[k] = v
	}
	return frameMark{offsets: offsets, types: types, spOffset: f.spOffset}
}

// rollback restores the frame to a prior mark, returning the number of bytes the block's own
// declarations pushed (what the caller must emit an `ADD sp, sp, #n` for).
func (f *frame) rollback(m frameMark) int {
	pushed := f.spOffset - m.spOffset
	f.offsets = m.offsets
	f.types = m.types
	f.spOffset = m.spOffset
	return pushed
}

// declareLocal pushes a new local of the given type: every existing binding's offset grows by its
// stack footprint (the new value now sits below them on a downward-growing stack), and the local
// itself is bound at offset 0.
func (f *frame) declareLocal(name string, t ast.Type) {
	size := t.Size()
	for k := range f.offsets {
		f.offsets[k] += size
	}
	f.offsets[name] = 0
	f.types[name] = t
	f.spOffset += size
}

// pushTemp accounts for a real-SP-moving push that binds no name of its own (call-argument
// marshalling): every existing binding's offset grows by size, the same way declareLocal grows
// them, so any identifier/array/pair-elem address computed after this push still lands at its
// true offset from the now-lower real stack pointer.
func (f *frame) pushTemp(size int) {
	for k := range f.offsets {
		f.offsets[k] += size
	}
	f.spOffset += size
}

// popTemp undoes the bookkeeping effect of one or more pushTemp calls once the real stack pointer
// has been restored by the same total size (e.g. after a call's argument-stack cleanup).
func (f *frame) popTemp(size int) {
	for k := range f.offsets {
		f.offsets[k] -= size
	}
	f.spOffset -= size
}
