package types

import "fmt"

// Primitive is the closed set of non-composite types.
type Primitive uint8

const (
	Void Primitive = iota
	Bool
	Uint8
	Uint16
	Uint32
	Uint64
	Usize
	Int8
	Int16
	Int32
	Int64
	Size
	Float32
	Float64
	// NullString is a C-style null-terminated byte sequence.
	NullString
)

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return fmt.Sprintf("types.Primitive(%d)", int(p))
}

var primitiveNames = map[Primitive]string{
	Void: "void", Bool: "bool",
	Uint8: "uint8", Uint16: "uint16", Uint32: "uint32", Uint64: "uint64", Usize: "usize",
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64", Size: "size",
	Float32: "float32", Float64: "float64", NullString: "nullstring",
}

var primitive32Align = map[Primitive]int{
	Void: 0, Bool: 1,
	Uint8: 1, Uint16: 2, Uint32: 4, Uint64: 8, Usize: 4,
	Int8: 1, Int16: 2, Int32: 4, Int64: 8, Size: 4,
	Float32: 4, Float64: 8, NullString: 4,
}

var primitive64Align = map[Primitive]int{
	Void: 0, Bool: 1,
	Uint8: 1, Uint16: 2, Uint32: 4, Uint64: 8, Usize: 8,
	Int8: 1, Int16: 2, Int32: 4, Int64: 8, Size: 8,
	Float32: 4, Float64: 8, NullString: 8,
}

// funcPtrAlign32/64 is the alignment of a function pointer on each target.
const funcPtrAlign32 = 4
const funcPtrAlign64 = 8

// Type is a Flycatcher type: one of the closed primitives, or one of the
// three composite tags (Function, Construct, CStruct). Exactly one of the
// Prim/Func/Construct/CStruct fields is meaningful, selected by Kind.
type Type struct {
	Kind      Kind
	Prim      Primitive
	Func      *Function
	Construct *Construct
	CStruct   *CStruct
}

// Kind discriminates which field of Type is populated.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindFunction
	KindConstruct
	KindCStruct
)

// Of wraps a primitive as a Type.
func Of(p Primitive) Type { return Type{Kind: KindPrimitive, Prim: p} }

// OfFunction wraps a Function as a Type.
func OfFunction(f *Function) Type { return Type{Kind: KindFunction, Func: f} }

// OfConstruct wraps a Construct as a Type.
func OfConstruct(c *Construct) Type { return Type{Kind: KindConstruct, Construct: c} }

// OfCStruct wraps a CStruct as a Type.
func OfCStruct(c *CStruct) Type { return Type{Kind: KindCStruct, CStruct: c} }

func (t Type) String() string {
	switch t.Kind {
	case KindFunction:
		return "func " + t.Func.Name
	case KindConstruct:
		return "construct " + t.Construct.Name
	case KindCStruct:
		return "struct " + t.CStruct.Name
	default:
		return t.Prim.String()
	}
}

// Equal reports structural equality, which for composites is by mangled
// name rather than deep field comparison (two constructs with the same
// full name are the same type).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindFunction:
		return t.Func.FullName.String() == other.Func.FullName.String()
	case KindConstruct:
		return t.Construct.FullName.String() == other.Construct.FullName.String()
	case KindCStruct:
		return t.CStruct.FullName.String() == other.CStruct.FullName.String()
	default:
		return t.Prim == other.Prim
	}
}

// Align32 returns this type's alignment on 32-bit targets, in bytes.
func (t Type) Align32() int {
	switch t.Kind {
	case KindFunction:
		return funcPtrAlign32
	case KindConstruct:
		return t.Construct.Align32()
	case KindCStruct:
		return t.CStruct.Align32()
	default:
		return primitive32Align[t.Prim]
	}
}

// Align64 returns this type's alignment on 64-bit targets, in bytes.
func (t Type) Align64() int {
	switch t.Kind {
	case KindFunction:
		return funcPtrAlign64
	case KindConstruct:
		return t.Construct.Align64()
	case KindCStruct:
		return t.CStruct.Align64()
	default:
		return primitive64Align[t.Prim]
	}
}

// Size32 returns this type's size on 32-bit targets, in bytes. For
// primitives and function pointers, size equals alignment.
func (t Type) Size32() int {
	switch t.Kind {
	case KindConstruct:
		return t.Construct.Size32()
	case KindCStruct:
		return t.CStruct.Size32()
	default:
		return t.Align32()
	}
}

// Size64 returns this type's size on 64-bit targets, in bytes.
func (t Type) Size64() int {
	switch t.Kind {
	case KindConstruct:
		return t.Construct.Size64()
	case KindCStruct:
		return t.CStruct.Size64()
	default:
		return t.Align64()
	}
}
