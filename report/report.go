// Package report implements the front end's Diagnostic Reporter: it
// accumulates structured diagnostics for a single file and renders them to
// a styled terminal stream on request.
//
// The reporter is the only mutable resource shared across the lexer, parser,
// and lowerer; it is always passed by explicit reference (a *Report), never
// held in a package-level variable.
package report

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/redgush/flycatcher/source"
)

// Level is the severity of a diagnostic.
type Level int8

const (
	// Bug indicates an internal compiler error: an invariant of the front
	// end was violated. Bugs are always fatal.
	Bug Level = iota
	// Error indicates a semantic or syntactic constraint violation in the
	// user's source.
	Error
	// Warning indicates something that probably should not be ignored, but
	// does not prevent compilation from succeeding.
	Warning
	// Note provides supporting context for another diagnostic, or stands on
	// its own as purely informational output.
	Note
	// Help offers a prose suggestion for resolving a diagnostic.
	Help
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Bug:
		return "bug"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// ToStderr reports whether diagnostics of this level are written to stderr
// by [Report.EmitOne]; everything else goes to stdout, per spec §4.1/§6.
func (l Level) ToStderr() bool {
	return l == Bug || l == Error
}

// LabelStyle distinguishes the two visual treatments a [Label] can have.
type LabelStyle int8

const (
	// Primary labels point directly at the cause of the diagnostic.
	Primary LabelStyle = iota
	// Secondary labels provide supporting context elsewhere in the source.
	Secondary
)

// Label is one annotated source span within a [Diagnostic].
type Label struct {
	Style   LabelStyle
	Span    source.Span
	Message string
}

// Diagnose is implemented by error types that know how to describe
// themselves as a rich [Diagnostic]. One concrete type exists per
// diagnostic code (ErrUnclosedString, ErrUnexpectedToken, and so on); this
// keeps each error's message, labels, and notes next to its definition
// instead of scattered across call sites.
type Diagnose interface {
	error

	// Diagnose fills in d's Code, Labels, and Notes. It must not set
	// d.Level; that is decided by which [Report] method the diagnostic was
	// pushed through.
	Diagnose(*Diagnostic)
}

// Diagnostic is a single structured, user-facing compiler message.
type Diagnostic struct {
	Level   Level
	Code    string
	Message string
	Labels  []Label
	Notes   []string

	isBug bool
}

// Primary returns this diagnostic's primary span, or the zero Span if it
// has none.
func (d *Diagnostic) Primary() source.Span {
	for _, l := range d.Labels {
		if l.Style == Primary {
			return l.Span
		}
	}
	return source.Span{}
}

// DiagnosticOption mutates a [Diagnostic] under construction. Nil options
// are ignored by [Diagnostic.With], so options that conditionally apply
// (e.g. "only if this span is non-nil") can simply return nil.
type DiagnosticOption func(*Diagnostic)

// With applies options to this diagnostic in order, skipping nil options.
func (d *Diagnostic) With(opts ...DiagnosticOption) *Diagnostic {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// WithCode sets the diagnostic's stable error code (e.g. "E0001").
func WithCode(code string) DiagnosticOption {
	return func(d *Diagnostic) { d.Code = code }
}

// Snippet returns an option that attaches a primary label (the first one
// added to a diagnostic becomes primary; subsequent ones are secondary)
// unless style is given explicitly via LabelAt.
func Snippet(at source.Spanner, format string, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}
	span := at.Span()
	if span.Nil() {
		return nil
	}
	label := Label{Span: span, Message: fmt.Sprintf(format, args...)}
	return func(d *Diagnostic) {
		label.Style = Primary
		for _, existing := range d.Labels {
			if existing.Style == Primary {
				label.Style = Secondary
				break
			}
		}
		d.Labels = append(d.Labels, label)
	}
}

// LabelAt returns an option that attaches a label with an explicit style.
func LabelAt(style LabelStyle, at source.Spanner, format string, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}
	span := at.Span()
	if span.Nil() {
		return nil
	}
	return func(d *Diagnostic) {
		d.Labels = append(d.Labels, Label{Style: style, Span: span, Message: fmt.Sprintf(format, args...)})
	}
}

// Note returns an option that appends a trailing note.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Report is an ordered collection of diagnostics for a single compilation.
//
// Report is not safe for concurrent pushes from multiple goroutines; the
// core pipeline is single-threaded (spec §5), so this is never an issue
// there. [batch.Compile] gives each concurrently-compiled file its own
// Report and returns it in that file's Result, rather than sharing one.
type Report struct {
	Diagnostics []Diagnostic

	renderer Renderer
}

// New creates an empty Report that renders with the given Renderer. A zero
// Renderer is a reasonable default (colorized, auto-detecting TTYs).
func New(r Renderer) *Report {
	return &Report{renderer: r}
}

// push appends a diagnostic built from err at the given level and returns a
// pointer to it so the caller can chain [Diagnostic.With].
func (r *Report) push(level Level, err Diagnose) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Level:   level,
		Message: err.Error(),
	})
	d := &r.Diagnostics[len(r.Diagnostics)-1]
	err.Diagnose(d)
	return d
}

// Push appends an already-built diagnostic without reordering existing
// ones.
func (r *Report) Push(d Diagnostic) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, d)
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// ErrorDiag pushes an Error-severity diagnostic built from err.
func (r *Report) ErrorDiag(err Diagnose) *Diagnostic { return r.push(Error, err) }

// WarnDiag pushes a Warning-severity diagnostic built from err.
func (r *Report) WarnDiag(err Diagnose) *Diagnostic { return r.push(Warning, err) }

// NoteDiag pushes a Note-severity diagnostic built from err.
func (r *Report) NoteDiag(err Diagnose) *Diagnostic { return r.push(Note, err) }

// HelpDiag pushes a Help-severity diagnostic built from err.
func (r *Report) HelpDiag(err Diagnose) *Diagnostic { return r.push(Help, err) }

// HasErrors reports whether any diagnostic of severity Error or Bug has
// been pushed. Per spec §7, a phase "succeeds" iff this is false once the
// phase has finished.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Level == Error || d.Level == Bug {
			return true
		}
	}
	return false
}

// ExitCode returns 0 if no Error/Bug diagnostic has been pushed, 1
// otherwise, per spec §6's CLI exit code contract.
func (r *Report) ExitCode() int {
	if r.HasErrors() {
		return 1
	}
	return 0
}

// CatchICE recovers a panic and records it as a Bug diagnostic, then
// re-panics. Call it in a defer at the top of each pipeline phase so an
// invariant violation always produces a diagnostic before the process
// aborts (spec §7).
func (r *Report) CatchICE(inFile string) {
	panicked := recover()
	if panicked == nil {
		return
	}

	d := Diagnostic{
		Level:   Bug,
		Code:    "ICE0000",
		Message: fmt.Sprintf("internal compiler error: %v", panicked),
		isBug:   true,
	}
	stack := strings.TrimSpace(string(debug.Stack()))
	d.Notes = append(d.Notes, "in file "+inFile, "stack trace:", stack)
	r.Push(d)

	panic(panicked)
}
