package types

// Construct is a Flycatcher-style aggregate introduced with an `@name`
// construct keyword, carrying both data properties and methods. Its
// layout rules mirror CStruct exactly; methods don't participate in size
// or alignment.
type Construct struct {
	Name     string
	FullName Named
	Props    []Property
	Methods  []*Function
}

func (c *Construct) fieldAligns32() []int {
	out := make([]int, len(c.Props))
	for i, p := range c.Props {
		out[i] = p.Type.Align32()
	}
	return out
}

func (c *Construct) fieldAligns64() []int {
	out := make([]int, len(c.Props))
	for i, p := range c.Props {
		out[i] = p.Type.Align64()
	}
	return out
}

func (c *Construct) Align32() int { return maxAlign(c.fieldAligns32()) }
func (c *Construct) Align64() int { return maxAlign(c.fieldAligns64()) }
func (c *Construct) Size32() int  { return layoutSize(c.fieldAligns32(), c.Align32()) }
func (c *Construct) Size64() int  { return layoutSize(c.fieldAligns64(), c.Align64()) }
