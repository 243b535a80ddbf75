package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquiv_BaseTypesReflexive(t *testing.T) {
	for _, tp := range []Type{Int(), Bool(), Char(), String()} {
		assert.True(t, Equiv(tp, tp))
	}
}

func TestEquiv_CharArrayAssignableToString(t *testing.T) {
	assert.True(t, Equiv(Array(Char()), String()))
	assert.True(t, Equiv(String(), Array(Char())))
	assert.False(t, Equiv(Array(Int()), String()))
}

func TestEquiv_NullMatchesAnyPair(t *testing.T) {
	assert.True(t, Equiv(Null(), Pair(Int(), Bool())))
	assert.True(t, Equiv(Pair(Int(), Bool()), Null()))
	assert.False(t, Equiv(Null(), Int()))
}

func TestEquiv_AnyAndErrorAreWildcards(t *testing.T) {
	assert.True(t, Equiv(Any(), Int()))
	assert.True(t, Equiv(Any(), Array(String())))
	assert.True(t, Equiv(Err(), Bool()))
	assert.True(t, Equiv(Int(), Err()))
}

func TestEquiv_ArraysAreElementwise(t *testing.T) {
	assert.True(t, Equiv(Array(Int()), Array(Int())))
	assert.False(t, Equiv(Array(Int()), Array(Bool())))
	assert.True(t, Equiv(Array(Array(Int())), Array(Array(Int()))))
}

func TestEquiv_PairsWithInnerPairErasure(t *testing.T) {
	concrete := Pair(Int(), Pair(Bool(), Char()))
	erased := Pair(Int(), InnerPair())
	assert.True(t, Equiv(concrete, erased))
	assert.True(t, Equiv(erased, concrete))
	assert.False(t, Equiv(Pair(Int(), InnerPair()), Pair(Bool(), InnerPair())))
}

func TestEquiv_EmptyArrayLiteralAssignableToAnyArray(t *testing.T) {
	empty := Array(Any())
	assert.True(t, Equiv(empty, Array(Int())))
	assert.True(t, Equiv(empty, Array(Pair(Int(), Int()))))
}

func TestSize(t *testing.T) {
	assert.Equal(t, 4, Int().Size())
	assert.Equal(t, 1, Bool().Size())
	assert.Equal(t, 1, Char().Size())
	assert.Equal(t, 4, String().Size())
	assert.Equal(t, 4, Array(Int()).Size())
	assert.Equal(t, 4, Pair(Int(), Int()).Size())
}
