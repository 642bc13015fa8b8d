package report_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
)

type fakeErr struct {
	msg   string
	code  string
	at    source.Span
	label string
}

func (e fakeErr) Error() string { return e.msg }
func (e fakeErr) Diagnose(d *report.Diagnostic) {
	d.With(report.WithCode(e.code), report.Snippet(spanner{e.at}, e.label))
}

type spanner struct{ sp source.Span }

func (s spanner) Span() source.Span { return s.sp }

func TestReportPushOrderIsStable(t *testing.T) {
	r := report.New(report.Renderer{})
	r.ErrorDiag(fakeErr{msg: "first"})
	r.WarnDiag(fakeErr{msg: "second"})
	r.ErrorDiag(fakeErr{msg: "third"})

	require.Len(t, r.Diagnostics, 3)
	assert.Equal(t, "first", r.Diagnostics[0].Message)
	assert.Equal(t, "second", r.Diagnostics[1].Message)
	assert.Equal(t, "third", r.Diagnostics[2].Message)
}

func TestReportHasErrors(t *testing.T) {
	r := report.New(report.Renderer{})
	r.WarnDiag(fakeErr{msg: "just a warning"})
	assert.False(t, r.HasErrors())
	assert.Equal(t, 0, r.ExitCode())

	r.ErrorDiag(fakeErr{msg: "boom"})
	assert.True(t, r.HasErrors())
	assert.Equal(t, 1, r.ExitCode())
}

func TestRenderIncludesCodeMessageAndUnderline(t *testing.T) {
	f := source.NewFile("a.fly", "x = 1;\n")
	sp := source.Span{File: f, Start: 0, End: 1} // "x"

	d := report.Diagnostic{Level: report.Error, Message: "use of undeclared variable"}
	d.With(report.WithCode("FC0017"), report.Snippet(spanner{sp}, "undeclared here"))

	rendered := report.Renderer{ForceColor: boolPtr(false)}.RenderString(d, false)

	assert.True(t, strings.Contains(rendered, "error[FC0017]: use of undeclared variable"))
	assert.True(t, strings.Contains(rendered, "a.fly:1:1"))
	assert.True(t, strings.Contains(rendered, "x = 1;"))
	assert.True(t, strings.Contains(rendered, "^"))
	assert.True(t, strings.Contains(rendered, "undeclared here"))
}

func TestRenderMultipleLabelsOnSameLine(t *testing.T) {
	f := source.NewFile("a.fly", "x + y;\n")
	left := source.Span{File: f, Start: 0, End: 1}
	right := source.Span{File: f, Start: 4, End: 5}

	d := report.Diagnostic{Level: report.Error, Message: "cannot use two different types in expression"}
	d.With(
		report.LabelAt(report.Secondary, spanner{left}, "this is a(n) 'size'"),
		report.LabelAt(report.Secondary, spanner{right}, "this is a(n) 'float64'"),
	)
	d.Labels[0].Style = report.Primary // simulate first-added-is-primary convention

	rendered := report.Renderer{}.RenderString(d, false)
	assert.True(t, strings.Contains(rendered, "x + y;"))
	assert.True(t, strings.Contains(rendered, "size"))
	assert.True(t, strings.Contains(rendered, "float64"))
}

func TestDiagnosticGoCmp(t *testing.T) {
	a := report.Diagnostic{Level: report.Warning, Code: "W1", Message: "m"}
	b := report.Diagnostic{Level: report.Warning, Code: "W1", Message: "m"}
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(report.Diagnostic{})); diff != "" {
		t.Fatalf("unexpected diff (-a +b):\n%s", diff)
	}
}

func boolPtr(b bool) *bool { return &b }
