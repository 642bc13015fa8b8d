package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redgush/flycatcher/backend"
	"github.com/redgush/flycatcher/lower"
	"github.com/redgush/flycatcher/parser"
	"github.com/redgush/flycatcher/report"
	"github.com/redgush/flycatcher/source"
)

func TestHandoffDeadStores(t *testing.T) {
	f := source.NewFile("t.fly", "x = 1; y = 2; z = y + 1;")
	r := report.New(report.Renderer{})
	p := parser.New(f, r)
	items := p.Parse()
	require.True(t, p.Successful())

	front := lower.New(f, r)
	hirOut, ok := front.Lower(items)
	require.True(t, ok, "diagnostics: %+v", r.Diagnostics)

	h := backend.New(f.Path(), f.Text(), hirOut, front.Symbols(), r)
	assert.True(t, h.Successful)
	assert.ElementsMatch(t, []string{"x", "z"}, h.DeadStores())
}
