package hir

import "github.com/redgush/flycatcher/types"

// Node is the sum type of HIR variants. The unexported marker method
// confines implementations to this package.
type Node interface {
	hirNode()
}

type Boolean struct{ Value bool }

// Integer is a signed 64-bit literal. See UnsignedInteger for literals
// that don't fit.
type Integer struct{ Value int64 }

// UnsignedInteger holds a literal whose value exceeds int64's range, or
// that was otherwise typed as an unsigned size.
type UnsignedInteger struct{ Value uint64 }

type Float struct{ Value float64 }

// Named is a reference to a variable by name; its type comes from the
// symbol table, not from this node.
type Named struct{ Name string }

type Add struct{ Left, Right Meta }

type Subtract struct{ Left, Right Meta }

type Multiply struct{ Left, Right Meta }

type Divide struct{ Left, Right Meta }

// Set assigns Value to the variable Target, declaring or defining it in
// the symbol table as a side effect of lowering.
type Set struct {
	Target Named
	Value  Meta
}

// NullString is a C-style null-terminated string literal.
type NullString struct{ Value string }

func (Boolean) hirNode()         {}
func (Integer) hirNode()         {}
func (UnsignedInteger) hirNode() {}
func (Float) hirNode()           {}
func (Named) hirNode()           {}
func (Add) hirNode()             {}
func (Subtract) hirNode()        {}
func (Multiply) hirNode()        {}
func (Divide) hirNode()          {}
func (Set) hirNode()             {}
func (NullString) hirNode()      {}

// TypeOf returns n's default type, consulting symbols for Named
// references. It panics if a Named node refers to a symbol absent from
// symbols, which lowering must never allow to happen.
func TypeOf(n Node, symbols *SymbolTable) types.Type {
	switch v := n.(type) {
	case Boolean:
		return types.Of(types.Bool)
	case Integer:
		return types.Of(types.Size)
	case UnsignedInteger:
		return types.Of(types.Usize)
	case Float:
		return types.Of(types.Float64)
	case NullString:
		return types.Of(types.NullString)
	case Named:
		vt, ok := symbols.Get(v.Name)
		if !ok {
			panic("hir: Named references undeclared symbol " + v.Name)
		}
		return vt.Type()
	case Add:
		return TypeOf(v.Left.Item, symbols)
	case Subtract:
		return TypeOf(v.Left.Item, symbols)
	case Multiply:
		return TypeOf(v.Left.Item, symbols)
	case Divide:
		return TypeOf(v.Left.Item, symbols)
	case Set:
		return TypeOf(v.Value.Item, symbols)
	default:
		panic("hir: TypeOf: unhandled node type")
	}
}
