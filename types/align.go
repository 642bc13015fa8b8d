// Package types implements the closed set of primitive types the lowerer
// assigns to HIR nodes, plus the composite Function, Construct, and CStruct
// tags and their target-dependent alignment and size computation.
package types

import "golang.org/x/exp/constraints"

// round rounds x up to the nearest multiple of mul.
func round[T constraints.Integer](x, mul T) T {
	return ((x + mul - 1) / mul) * mul
}

// layoutSize walks fields in declared order, accumulating each field's
// alignment into a running offset (rounding up to the next field's
// alignment along the way), then rounds the final total up to align — the
// struct's own alignment, which is the max of its members'.
func layoutSize(fieldAligns []int, structAlign int) int {
	size := 0
	for i, a := range fieldAligns {
		if i+1 < len(fieldAligns) {
			size += a
			size = round(size, fieldAligns[i+1])
		} else {
			size += a
		}
	}
	return round(size, structAlign)
}

func maxAlign(fieldAligns []int) int {
	max := 0
	for _, a := range fieldAligns {
		if a > max {
			max = a
		}
	}
	return max
}
