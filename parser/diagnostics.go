package parser

import (
	"fmt"

	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
	"github.com/redgush/flycatcher/token"
)

// spanner adapts a source.Span to report.Spanner so diagnostics can cite
// raw spans without needing a token in hand.
type spanner struct{ sp source.Span }

func (s spanner) Span() source.Span { return s.sp }

// ErrUnclosedString is E0001: a string literal that reaches EOF or the end
// of a line before its closing quote.
type ErrUnclosedString struct {
	Token token.Token
}

func (e ErrUnclosedString) Error() string { return "unterminated string literal" }

func (e ErrUnclosedString) Diagnose(d *report.Diagnostic) {
	open := "?"
	if text := e.Token.Text(); len(text) > 0 {
		open = text[:1]
	}
	d.With(
		report.WithCode("E0001"),
		report.Snippet(spanner{e.Token.Span}, "expected this string to be terminated by `%s`", open),
	)
}

// ErrUnexpectedString is E0002: a string literal appeared where the
// grammar expected something else.
type ErrUnexpectedString struct {
	Token token.Token
	Where string
}

func (e ErrUnexpectedString) Error() string { return "unexpected string literal" }

func (e ErrUnexpectedString) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0002"),
		report.Snippet(spanner{e.Token.Span}, "unexpected string literal %s", e.Where),
	)
}

// ErrUnexpectedEOF is E0003.
type ErrUnexpectedEOF struct {
	At   source.Span
	What string
}

func (e ErrUnexpectedEOF) Error() string { return "unexpected end of file" }

func (e ErrUnexpectedEOF) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0003"),
		report.Snippet(spanner{e.At}, "expected %s here, found end of file", e.What),
	)
}

// ErrDocCommentForbidden is E0004: a doc comment appeared somewhere that
// has nothing to attach it to.
type ErrDocCommentForbidden struct {
	At source.Span
}

func (e ErrDocCommentForbidden) Error() string { return "doc comment in forbidden position" }

func (e ErrDocCommentForbidden) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0004"),
		report.Snippet(spanner{e.At}, "this doc comment has nothing to document"),
	)
}

// ErrInvalidCharacter is E0005.
type ErrInvalidCharacter struct {
	Token token.Token
}

func (e ErrInvalidCharacter) Error() string { return "invalid character" }

func (e ErrInvalidCharacter) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0005"),
		report.Snippet(spanner{e.Token.Span}, "this character is not valid here"),
	)
}

// ErrUnexpectedToken is E0006.
type ErrUnexpectedToken struct {
	Token token.Token
	Want  string
}

func (e ErrUnexpectedToken) Error() string { return "unexpected token" }

func (e ErrUnexpectedToken) Diagnose(d *report.Diagnostic) {
	msg := fmt.Sprintf("unexpected `%s`", e.Token.Text())
	if e.Want != "" {
		msg = fmt.Sprintf("unexpected `%s`, expected %s", e.Token.Text(), e.Want)
	}
	d.With(report.WithCode("E0006"), report.Snippet(spanner{e.Token.Span}, "%s", msg))
}

// ErrIntegerTooLarge is E0007: a numeric literal with no fractional part
// exceeds u64's range.
type ErrIntegerTooLarge struct {
	Token token.Token
}

func (e ErrIntegerTooLarge) Error() string { return "numeric literal too large" }

func (e ErrIntegerTooLarge) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0007"),
		report.Snippet(spanner{e.Token.Span}, "this literal does not fit in a 64-bit integer"),
	)
}

// ErrMissingOperand is E0008.
type ErrMissingOperand struct {
	Operator token.Token
	At       source.Span
}

func (e ErrMissingOperand) Error() string { return "missing right-hand operand" }

func (e ErrMissingOperand) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0008"),
		report.Snippet(spanner{e.Operator.Span}, "this operator is missing its right-hand operand"),
		report.LabelAt(report.Secondary, spanner{e.At}, "expected an expression here"),
	)
}

// ErrUnclosedSubscript is E0009.
type ErrUnclosedSubscript struct {
	Open token.Token
	At   source.Span
}

func (e ErrUnclosedSubscript) Error() string { return "unclosed subscript" }

func (e ErrUnclosedSubscript) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0009"),
		report.Snippet(spanner{e.At}, "expected `]` to close this subscript"),
		report.LabelAt(report.Secondary, spanner{e.Open.Span}, "subscript opened here"),
	)
}

// ErrMissingCondition is E0010: `if`/`while` with no condition expression.
type ErrMissingCondition struct {
	Keyword token.Token
}

func (e ErrMissingCondition) Error() string { return "missing condition" }

func (e ErrMissingCondition) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0010"),
		report.Snippet(spanner{e.Keyword.Span}, "`%s` is missing its condition expression", e.Keyword.Text()),
	)
}

// ErrUnclosedBlock is E0011.
type ErrUnclosedBlock struct {
	Open token.Token
	At   source.Span
}

func (e ErrUnclosedBlock) Error() string { return "unclosed block" }

func (e ErrUnclosedBlock) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0011"),
		report.Snippet(spanner{e.At}, "expected `}` to close this block, found end of file"),
		report.LabelAt(report.Secondary, spanner{e.Open.Span}, "block opened here"),
	)
}

// ErrExpectedBlockOrIf is E0012: `else` not followed by `{` or `if`.
type ErrExpectedBlockOrIf struct {
	Else token.Token
	At   source.Span
}

func (e ErrExpectedBlockOrIf) Error() string { return "expected `{` or `if` after `else`" }

func (e ErrExpectedBlockOrIf) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0012"),
		report.Snippet(spanner{e.At}, "expected `{` or `if` after this `else`"),
	)
}

// ErrValueExpected is E0013.
type ErrValueExpected struct {
	Token token.Token
}

func (e ErrValueExpected) Error() string { return "value expected" }

func (e ErrValueExpected) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0013"),
		report.Snippet(spanner{e.Token.Span}, "expected a value here, found `%s`", e.Token.Text()),
	)
}

// ErrUnclosedList is E0014: an array literal or call argument list reached
// EOF or an unexpected token before its closing delimiter.
type ErrUnclosedList struct {
	Open  token.Token
	Close string
	At    source.Span
}

func (e ErrUnclosedList) Error() string { return "unclosed list" }

func (e ErrUnclosedList) Diagnose(d *report.Diagnostic) {
	d.With(
		report.WithCode("E0014"),
		report.Snippet(spanner{e.At}, "expected `%s` or `,` here", e.Close),
		report.LabelAt(report.Secondary, spanner{e.Open.Span}, "list opened here"),
	)
}
