package report

import (
	"fmt"
	"os"
)

// EmitOne renders and writes a single diagnostic: to stderr if its level is
// Bug or Error, to stdout otherwise, per spec §4.1/§6.
func (r *Report) EmitOne(renderer Renderer, d Diagnostic) error {
	w := os.Stdout
	if d.Level.ToStderr() {
		w = os.Stderr
	}
	_, err := fmt.Fprintln(w, renderer.renderOne(d, renderer.colorizeFor(w)))
	return err
}

// EmitAll renders every buffered diagnostic, in push order, via EmitOne.
// An I/O failure partway through is returned immediately but does not
// discard any buffered diagnostics.
func (r *Report) EmitAll(renderer Renderer) error {
	for _, d := range r.Diagnostics {
		if err := r.EmitOne(renderer, d); err != nil {
			return err
		}
	}
	return nil
}

// Flush renders every buffered diagnostic and then clears the buffer.
// Diagnostics are cleared even if rendering one of them fails partway
// through, since flush is a "best effort, move on" operation by
// convention; callers that need the stronger all-or-nothing guarantee
// should use EmitAll followed by a manual reset.
func (r *Report) Flush(renderer Renderer) error {
	err := r.EmitAll(renderer)
	r.Diagnostics = nil
	return err
}

// RenderString renders a single diagnostic to a plain string, without
// writing it anywhere. Useful for tests and for embedding a diagnostic's
// text inside another error.
func (r Renderer) RenderString(d Diagnostic, colorize bool) string {
	return r.renderOne(d, colorize)
}
