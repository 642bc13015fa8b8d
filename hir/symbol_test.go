package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgush/flycatcher/hir"
	"github.com/redgush/flycatcher/types"
)

func TestSymbolTableDeclareThenDefine(t *testing.T) {
	st := hir.NewSymbolTable()
	st.Declare("x", types.Of(types.Size))

	v, ok := st.Get("x")
	assert.True(t, ok)
	assert.Equal(t, hir.Declared, v.State)

	st.Define("x", types.Of(types.Size), 0)
	v, ok = st.Get("x")
	assert.True(t, ok)
	assert.Equal(t, hir.Defined, v.State)
	assert.Equal(t, 0, v.RefCount)
	assert.Equal(t, 0, v.HIRIndex)
}

func TestSymbolTableReferenceCounting(t *testing.T) {
	st := hir.NewSymbolTable()
	st.Define("x", types.Of(types.Size), 0)

	st.Reference("x")
	st.Reference("x")

	v, _ := st.Get("x")
	assert.Equal(t, 2, v.RefCount)
}

func TestSymbolTableReferenceUnknownIsNoop(t *testing.T) {
	st := hir.NewSymbolTable()
	assert.NotPanics(t, func() { st.Reference("nope") })
	_, ok := st.Get("nope")
	assert.False(t, ok)
}

func TestSymbolTableIterationIsKeyOrdered(t *testing.T) {
	st := hir.NewSymbolTable()
	st.Declare("z", types.Of(types.Size))
	st.Declare("a", types.Of(types.Size))
	st.Declare("m", types.Of(types.Size))

	var order []string
	st.Each(func(name string, v hir.VariableType) bool {
		order = append(order, name)
		return true
	})
	assert.Equal(t, []string{"a", "m", "z"}, order)
}
