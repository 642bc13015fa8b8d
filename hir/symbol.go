package hir

import (
	"github.com/tidwall/btree"

	"github.com/redgush/flycatcher/types"
)

// VariableState discriminates a VariableType's two states.
type VariableState uint8

const (
	// Declared means a symbol's type is known but it has not yet been
	// assigned a value; this is the only state after resolveSymbols and
	// before convert reaches its defining `=`.
	Declared VariableState = iota
	// Defined means the symbol has a value, tracked by RefCount uses and
	// HIRIndex pointing at the Set statement that defines it.
	Defined
)

// VariableType is a symbol table entry: a type, plus (once Defined) the
// bookkeeping the backend needs to drop unreferenced definitions.
type VariableType struct {
	State VariableState
	Type_ types.Type

	// RefCount is the number of Named references to this symbol seen so
	// far. Only meaningful once State == Defined.
	RefCount int

	// HIRIndex indexes the HIR statement whose top-level form is the Set
	// that defines this symbol. Only meaningful once State == Defined.
	HIRIndex int
}

// Type returns the symbol's type regardless of state.
func (v VariableType) Type() types.Type { return v.Type_ }

// NewDeclared returns a VariableType in the Declared state.
func NewDeclared(t types.Type) VariableType {
	return VariableType{State: Declared, Type_: t}
}

// NewDefined returns a VariableType in the Defined state.
func NewDefined(t types.Type, refCount, hirIndex int) VariableType {
	return VariableType{State: Defined, Type_: t, RefCount: refCount, HIRIndex: hirIndex}
}

// SymbolTable maps identifier strings to their VariableType, keyed
// uniquely per scope. Backed by a btree.Map, which keeps keys in sorted
// order: diagnostics and the backend handoff both want a stable, repeatable
// walk order regardless of Go's randomized map iteration, and lexical
// order is as good a tie-break as any.
type SymbolTable struct {
	tree btree.Map[string, VariableType]
}

// NewSymbolTable returns an empty, ready-to-use symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Get looks up name, reporting whether it is present.
func (s *SymbolTable) Get(name string) (VariableType, bool) {
	return s.tree.Get(name)
}

// Declare inserts name in the Declared state, or overwrites whatever was
// there before.
func (s *SymbolTable) Declare(name string, t types.Type) {
	s.tree.Set(name, NewDeclared(t))
}

// Define transitions name to the Defined state with the given type and
// HIR index, and a fresh ref count of zero.
func (s *SymbolTable) Define(name string, t types.Type, hirIndex int) {
	s.tree.Set(name, NewDefined(t, 0, hirIndex))
}

// Reference increments name's ref count. It is a no-op (not a panic) if
// name isn't present, since the lowerer reports undeclared-variable use
// as a diagnostic rather than a Go-level invariant violation.
func (s *SymbolTable) Reference(name string) {
	v, ok := s.tree.Get(name)
	if !ok {
		return
	}
	v.RefCount++
	s.tree.Set(name, v)
}

// Len returns the number of symbols in the table.
func (s *SymbolTable) Len() int { return s.tree.Len() }

// Each calls fn for every symbol in ascending key order, stopping early if
// fn returns false.
func (s *SymbolTable) Each(fn func(name string, v VariableType) bool) {
	s.tree.Scan(fn)
}
