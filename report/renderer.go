package report

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/redgush/flycatcher/source"
)

// Renderer configures how diagnostics are rendered to a terminal stream.
//
// A zero Renderer auto-detects colorization from the destination stream
// (see [Renderer.colorizeFor]); set ForceColor explicitly to force it either
// way, e.g. when the caller already knows the destination is not a TTY.
type Renderer struct {
	// ForceColor, when non-nil, overrides TTY auto-detection: true always
	// colorizes, false never does.
	ForceColor *bool
}

// colorizeFor decides whether to colorize output written to w, honoring
// ForceColor if set and otherwise checking whether w is a terminal.
func (r Renderer) colorizeFor(w *os.File) bool {
	if r.ForceColor != nil {
		return *r.ForceColor
	}
	info, err := w.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// renderOne renders a single diagnostic as a styled, multi-line string
// with no trailing newline.
func (r Renderer) renderOne(d Diagnostic, colorize bool) string {
	c := newStyleSheet(colorize)

	var buf strings.Builder

	// Header: "error[E0001]: message"
	levelColor := c.forLevel(d.Level)
	header := d.Level.String()
	if d.isBugHeader() {
		header = "internal compiler error"
	}
	if d.Code != "" {
		header = fmt.Sprintf("%s[%s]", header, d.Code)
	}
	fmt.Fprintf(&buf, "%s: %s", c.paint(levelColor, header), d.Message)

	primary := d.Primary()
	if !primary.Nil() {
		gutterWidth := len(strconv.Itoa(primary.EndLine() + 1))
		fmt.Fprintf(&buf, "\n%s%s %s:%d:%d\n",
			strings.Repeat(" ", gutterWidth), c.paint(c.boldCyan, "-->"),
			primary.Path(), primary.Line()+1, primary.Column()+1)

		r.renderSnippet(&buf, c, d, gutterWidth, levelColor)
	} else if d.InFileHint() != "" {
		buf.WriteString("\n  --> " + d.InFileHint())
	}

	for _, note := range d.Notes {
		buf.WriteString("\n")
		for i, line := range strings.Split(note, "\n") {
			if i == 0 {
				fmt.Fprintf(&buf, "%s %s", c.paint(c.boldCyan, "="), line)
			} else {
				fmt.Fprintf(&buf, "\n  %s", line)
			}
		}
	}

	return buf.String()
}

// isBugHeader reports whether this diagnostic should render with the
// "internal compiler error" header instead of its level name, per spec §7.
func (d Diagnostic) isBugHeader() bool {
	return d.isBug || d.Level == Bug
}

// InFileHint is a diagnostic-in-a-file reference with no associated span,
// e.g. "file too large to lex". Currently always empty; reserved for
// diagnostics that want to name a file without a snippet.
func (d Diagnostic) InFileHint() string { return "" }

// renderSnippet writes the contiguous block of source lines touched by any
// label in d, each followed by underlines for the labels on that line.
func (r Renderer) renderSnippet(buf *strings.Builder, c styleSheet, d Diagnostic, gutterWidth int, levelColor string) {
	if len(d.Labels) == 0 {
		return
	}

	var file *source.File
	minLine, maxLine := -1, -1
	for _, l := range d.Labels {
		if l.Span.Nil() {
			continue
		}
		file = l.Span.File
		if minLine == -1 || l.Span.Line() < minLine {
			minLine = l.Span.Line()
		}
		if maxLine == -1 || l.Span.EndLine() > maxLine {
			maxLine = l.Span.EndLine()
		}
	}
	if file == nil {
		return
	}

	pad := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(buf, "%s %s\n", pad, c.paint(c.boldCyan, "|"))

	for line := minLine; line <= maxLine; line++ {
		text := file.Line(line)
		lineStart := lineByteOffset(file, line)
		lineEnd := lineStart + len(text)

		fmt.Fprintf(buf, "%*d %s %s\n", gutterWidth, line+1, c.paint(c.boldCyan, "|"), text)

		underline := buildUnderline(d.Labels, line, lineStart, lineEnd, text, c, levelColor)
		if underline != "" {
			fmt.Fprintf(buf, "%s %s %s\n", pad, c.paint(c.boldCyan, "|"), underline)
		}
	}
}

// lineByteOffset returns the byte offset of the start of the given
// 0-indexed line within file's text. It binary searches on Span.Line
// since File does not expose its line table directly.
func lineByteOffset(file *source.File, line int) int {
	sp := source.Span{File: file, Start: 0, End: 0}
	lo, hi := 0, len(file.Text())
	for lo < hi {
		mid := (lo + hi) / 2
		sp.Start, sp.End = mid, mid
		if sp.Line() < line {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// buildUnderline renders one line of carets (primary: '^', secondary: '-')
// beneath a source line, one per label that touches it, each followed by
// its message if non-empty. Multiple labels on one line are concatenated
// left to right in span order.
func buildUnderline(labels []Label, line, lineStart, lineEnd int, text string, c styleSheet, primaryColor string) string {
	type mark struct {
		col, width int
		primary    bool
		message    string
	}
	var marks []mark
	for _, l := range labels {
		if l.Span.Nil() || l.Span.Line() > line || l.Span.EndLine() < line {
			continue
		}
		start := l.Span.Start
		if start < lineStart {
			start = lineStart
		}
		end := l.Span.End
		if end > lineEnd {
			end = lineEnd
		}
		if end < start {
			end = start
		}
		col := displayWidth(text[:start-lineStart])
		width := displayWidth(text[start-lineStart : end-lineStart])
		if width == 0 {
			width = 1
		}
		marks = append(marks, mark{col: col, width: width, primary: l.Style == Primary, message: l.Message})
	}
	if len(marks) == 0 {
		return ""
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].col < marks[j].col })

	var out strings.Builder
	col := 0
	var trailing []string
	for _, m := range marks {
		if m.col > col {
			out.WriteString(strings.Repeat(" ", m.col-col))
			col = m.col
		}
		ch := "-"
		color := c.boldCyan
		if m.primary {
			ch = "^"
			color = primaryColor
		}
		out.WriteString(c.paint(color, strings.Repeat(ch, m.width)))
		col += m.width
		if m.message != "" {
			trailing = append(trailing, m.message)
		}
	}
	if len(trailing) > 0 {
		out.WriteString(" " + strings.Join(trailing, "; "))
	}
	return out.String()
}
