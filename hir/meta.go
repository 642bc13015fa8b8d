// Package hir implements the lowerer's output: a typed, name-resolved
// intermediate representation, plus the symbol table the two lowering
// passes build and consult.
package hir

import "github.com/redgush/flycatcher/source"

// Meta wraps a Node with the span and filename it was lowered from, so
// diagnostics raised after lowering can still point at source.
type Meta struct {
	Span     source.Span
	Filename string
	Item     Node
}

// New wraps item with its originating span and filename.
func New(span source.Span, filename string, item Node) Meta {
	return Meta{Span: span, Filename: filename, Item: item}
}
