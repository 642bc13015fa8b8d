package report

import "github.com/rivo/uniseg"

// TabWidth is the column width a tab stop renders as when computing where
// underlines should align beneath a source line.
const TabWidth = 4

// displayWidth returns the number of terminal columns s occupies, expanding
// tabs to TabWidth and treating wide/combining runes correctly via
// [uniseg.StringWidth], so an underline beneath a line containing e.g. CJK
// text or a tab still lines up with the byte range it annotates.
func displayWidth(s string) int {
	if s == "" {
		return 0
	}
	width := 0
	for _, seg := range splitTabs(s) {
		if seg == "\t" {
			width += TabWidth
			continue
		}
		width += uniseg.StringWidth(seg)
	}
	return width
}

// splitTabs splits s into a sequence of single-tab and non-tab runs, so
// displayWidth can give tabs their own fixed width instead of whatever
// uniseg would otherwise attribute to them.
func splitTabs(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\t' {
			if i > start {
				out = append(out, s[start:i])
			}
			out = append(out, "\t")
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
