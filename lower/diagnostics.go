package lower

import (
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
)

// spanner adapts a source.Span to report.Spanner, mirroring parser.spanner;
// the lowerer works from ast.Meta/hir.Meta spans rather than tokens, so it
// has no Token field to carry alongside.
type spanner struct{ sp source.Span }

func (s spanner) Span() source.Span { return s.sp }

// ErrUndeclaredVariable is FC0017: an identifier that never appears on the
// left of a top-level `=`.
type ErrUndeclaredVariable struct {
	At source.Span
}

func (e ErrUndeclaredVariable) Error() string { return "use of undeclared variable" }

func (e ErrUndeclaredVariable) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0017"),
		report.Snippet(spanner{e.At}, "this variable is undeclared in this scope"),
	)
}

// ErrUndefinedVariable is FC0018: a symbol is Declared but not yet Defined.
type ErrUndefinedVariable struct {
	At source.Span
}

func (e ErrUndefinedVariable) Error() string { return "use of undefined variable" }

func (e ErrUndefinedVariable) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0018"),
		report.Snippet(spanner{e.At}, "this variable is declared, but not yet given a value"),
	)
}

// ErrUnsupportedExpression is FC0019: a binary operator other than
// +, -, *, /, = reached the lowerer.
type ErrUnsupportedExpression struct {
	At source.Span
}

func (e ErrUnsupportedExpression) Error() string { return "unsupported expression" }

func (e ErrUnsupportedExpression) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0019"),
		report.Snippet(spanner{e.At}, "this expression isn't supported by the compiler yet"),
	)
}

// ErrInvalidExpression is FC0020: an operand of a binary expression failed
// to lower and no more specific diagnostic was already raised for it.
type ErrInvalidExpression struct {
	At source.Span
}

func (e ErrInvalidExpression) Error() string { return "invalid expression" }

func (e ErrInvalidExpression) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0020"),
		report.Snippet(spanner{e.At}, "invalid expression here"),
	)
}

// ErrTypeMismatch is FC0021: the two operands of +, -, *, or / lowered to
// different types.
type ErrTypeMismatch struct {
	At                  source.Span
	LeftAt, RightAt     source.Span
	LeftType, RightType string
}

func (e ErrTypeMismatch) Error() string { return "cannot use two different types in expression" }

func (e ErrTypeMismatch) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0021"),
		report.LabelAt(report.Secondary, spanner{e.LeftAt}, "this is a(n) '%s'", e.LeftType),
		report.LabelAt(report.Secondary, spanner{e.RightAt}, "this is a(n) '%s'", e.RightType),
		report.LabelAt(report.Primary, spanner{e.At}, "both sides of this expression should be of type '%s'", e.LeftType),
	)
}

// ErrUnsupportedStatement is FC0022: a top-level AST item that isn't a
// recognized expression or assignment form.
type ErrUnsupportedStatement struct {
	At source.Span
}

func (e ErrUnsupportedStatement) Error() string { return "unsupported statement" }

func (e ErrUnsupportedStatement) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0022"),
		report.Snippet(spanner{e.At}, "this statement isn't supported by the compiler yet"),
	)
}

// ErrInvalidSetTarget is FC0023: the left-hand side of `=` is not a bare
// identifier.
type ErrInvalidSetTarget struct {
	At source.Span
}

func (e ErrInvalidSetTarget) Error() string { return "invalid set expression" }

func (e ErrInvalidSetTarget) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0023"),
		report.Snippet(spanner{e.At}, "the '=' operator may only be used on variable names"),
	)
}

// ErrInvalidVariableValue is FC0024: a top-level declaration's right-hand
// side failed to lower, with nothing more specific already reported.
type ErrInvalidVariableValue struct {
	At source.Span
}

func (e ErrInvalidVariableValue) Error() string { return "invalid value for variable" }

func (e ErrInvalidVariableValue) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0024"),
		report.Snippet(spanner{e.At}, "this value is invalid"),
	)
}

// ErrVariableTypeMismatch is FC0025: an `=` assigns a value whose type
// doesn't match the symbol's declared type.
type ErrVariableTypeMismatch struct {
	TargetAt, ValueAt     source.Span
	TargetType, ValueType string
}

func (e ErrVariableTypeMismatch) Error() string {
	return "variable value doesn't match variable signature"
}

func (e ErrVariableTypeMismatch) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0025"),
		report.LabelAt(report.Primary, spanner{e.TargetAt}, "this variable is of type '%s'", e.TargetType),
		report.LabelAt(report.Primary, spanner{e.ValueAt}, "new value is of type '%s'", e.ValueType),
	)
}

// ErrUnsupportedConstruct is FC0026 (Decision D3, SPEC_FULL.md §7):
// FunctionConstruct/ClassConstruct/VariableConstruct/Declare/Template AST
// nodes parse successfully but have no HIR lowering yet.
type ErrUnsupportedConstruct struct {
	At   source.Span
	What string
}

func (e ErrUnsupportedConstruct) Error() string { return "construct not supported by this front end" }

func (e ErrUnsupportedConstruct) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("FC0026"),
		report.Snippet(spanner{e.At}, "%s is not yet supported by this front end", e.What),
	)
}
