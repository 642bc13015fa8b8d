// Package backend defines the read-only handoff shape the front end exposes
// to a (out-of-scope, spec §1) machine-code backend: the HIR plus its symbol
// table and diagnostics for one compiled file.
package backend

import (
	"github.com/redgush/flycatcher/hir"
	"github.com/redgush/flycatcher/report"
)

// Handoff is the object a backend consumes, per spec §4.5. A backend may
// reject types it cannot compile, but it must not mutate this value; every
// field here is owned by the front end that produced it.
type Handoff struct {
	Filename    string
	Source      string
	HIR         []hir.Meta
	Symbols     *hir.SymbolTable
	Diagnostics []report.Diagnostic
	Successful  bool
}

// New builds a Handoff from a completed lowering pass.
func New(filename, source string, hirOut []hir.Meta, symbols *hir.SymbolTable, r *report.Report) Handoff {
	return Handoff{
		Filename:    filename,
		Source:      source,
		HIR:         hirOut,
		Symbols:     symbols,
		Diagnostics: r.Diagnostics,
		Successful:  !r.HasErrors(),
	}
}

// DeadStores returns the names of every Defined symbol whose RefCount is
// zero: a backend can safely elide these definitions, per spec §3's
// "hir_index lets the backend elide a definition whose ref_count is zero"
// invariant and SPEC_FULL.md §6's supplemented convenience accessor. It is
// purely derived from h.Symbols and adds no new bookkeeping.
func (h Handoff) DeadStores() []string {
	var dead []string
	h.Symbols.Each(func(name string, v hir.VariableType) bool {
		if v.State == hir.Defined && v.RefCount == 0 {
			dead = append(dead, name)
		}
		return true
	})
	return dead
}
