package types

import "strings"

// Named is a fully-qualified identifier used as the mangled name of a
// composite type: the top-level name followed by zero or more path
// components, e.g. Named{"widget", []string{"property", "property2"}}
// for `widget.property.property2`.
type Named struct {
	Root  string
	Parts []string
}

func (n Named) String() string {
	if len(n.Parts) == 0 {
		return n.Root
	}
	return n.Root + "." + strings.Join(n.Parts, ".")
}
