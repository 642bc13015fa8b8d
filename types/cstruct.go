package types

// Property is a named, typed member of a Construct or CStruct.
type Property struct {
	Name string
	Type Type
}

// CStruct is a C-ABI struct introduced with the `@struct` construct. Named
// CStruct rather than Struct to avoid colliding with the `struct` keyword
// in places that matter.
type CStruct struct {
	Name     string
	FullName Named
	Props    []Property
}

func (c *CStruct) fieldAligns32() []int {
	out := make([]int, len(c.Props))
	for i, p := range c.Props {
		out[i] = p.Type.Align32()
	}
	return out
}

func (c *CStruct) fieldAligns64() []int {
	out := make([]int, len(c.Props))
	for i, p := range c.Props {
		out[i] = p.Type.Align64()
	}
	return out
}

// Align32 is the max alignment of any member, on 32-bit targets.
func (c *CStruct) Align32() int { return maxAlign(c.fieldAligns32()) }

// Align64 is the max alignment of any member, on 64-bit targets.
func (c *CStruct) Align64() int { return maxAlign(c.fieldAligns64()) }

// Size32 lays out members in declared order on 32-bit targets, rounding the
// running offset up to each next member's alignment, then rounds the final
// size up to the struct's own alignment.
func (c *CStruct) Size32() int { return layoutSize(c.fieldAligns32(), c.Align32()) }

// Size64 is Size32's 64-bit-target counterpart.
func (c *CStruct) Size64() int { return layoutSize(c.fieldAligns64(), c.Align64()) }
