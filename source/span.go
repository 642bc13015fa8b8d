// Package source provides the shared byte-range data model used by every
// stage of the front end: lexer tokens, AST nodes, HIR nodes, and diagnostic
// labels all carry a Span into a File.
package source

import "sort"

// File is a single source file: its path and its full text.
//
// A File is immutable once constructed; every Span referencing it indexes
// into the same, unchanging text.
type File struct {
	path string
	text string

	// lineStarts[i] is the byte offset of the first byte of line i (0-indexed).
	lineStarts []int
}

// NewFile constructs a File from a path and its text, precomputing line
// start offsets for Span.Line/Span.Column.
func NewFile(path, text string) *File {
	f := &File{path: path, text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Path returns the file's path, as given to NewFile.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns the file's full source text.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	if f == nil {
		return 0
	}
	return len(f.lineStarts)
}

// Line returns the text of the given 0-indexed line, without its trailing
// line terminator.
func (f *File) Line(n int) string {
	if f == nil || n < 0 || n >= len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n]
	end := len(f.text)
	if n+1 < len(f.lineStarts) {
		end = f.lineStarts[n+1]
	}
	line := f.text[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// offsetToLine returns the 0-indexed line containing the given byte offset.
func (f *File) offsetToLine(offset int) int {
	// lineStarts is sorted by construction; find the last start <= offset.
	i := sort.SearchInts(f.lineStarts, offset+1) - 1
	if i < 0 {
		return 0
	}
	return i
}

// Span is a half-open byte range [Start, End) into a File.
//
// Spans are invariant once assigned: nothing in this module mutates a Span
// after it is created.
type Span struct {
	File       *File
	Start, End int
}

// Nil reports whether this is the zero Span (no file).
func (s Span) Nil() bool {
	return s.File == nil
}

// Path returns the path of the file this span points into, or "" for a nil
// span.
func (s Span) Path() string {
	return s.File.Path()
}

// Text returns the slice of source text this span covers.
func (s Span) Text() string {
	if s.Nil() {
		return ""
	}
	return s.File.Text()[s.Start:s.End]
}

// Line returns the 0-indexed line on which the span starts.
func (s Span) Line() int {
	if s.Nil() {
		return 0
	}
	return s.File.offsetToLine(s.Start)
}

// EndLine returns the 0-indexed line on which the span ends.
//
// For an empty span this is equal to Line().
func (s Span) EndLine() int {
	if s.Nil() {
		return 0
	}
	end := s.End
	if end > s.Start {
		end--
	}
	return s.File.offsetToLine(end)
}

// Column returns the 0-indexed, byte-counted column at which the span
// starts within its starting line.
func (s Span) Column() int {
	if s.Nil() {
		return 0
	}
	lineStart := s.File.lineStarts[s.Line()]
	return s.Start - lineStart
}

// Spanner is implemented by anything that carries a Span, so diagnostics
// can be attached to tokens, AST nodes, and HIR nodes alike.
type Spanner interface {
	Span() Span
}

// Join returns the smallest Span that contains both a and b. Both must
// point into the same file; a nil argument is ignored.
func Join(a, b Span) Span {
	if a.Nil() {
		return b
	}
	if b.Nil() {
		return a
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{File: a.File, Start: start, End: end}
}
