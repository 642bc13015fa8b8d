package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgush/flycatcher/source"
)

func TestFileLines(t *testing.T) {
	f := source.NewFile("a.fly", "x = 1;\ny = 2;\n")

	assert.Equal(t, 3, f.LineCount())
	assert.Equal(t, "x = 1;", f.Line(0))
	assert.Equal(t, "y = 2;", f.Line(1))
	assert.Equal(t, "", f.Line(2))
}

func TestSpanLineColumn(t *testing.T) {
	f := source.NewFile("a.fly", "x = 1;\ny = 2;\n")

	sp := source.Span{File: f, Start: 7, End: 8} // "y"
	assert.Equal(t, 1, sp.Line())
	assert.Equal(t, 0, sp.Column())
	assert.Equal(t, "y", sp.Text())
}

func TestSpanJoin(t *testing.T) {
	f := source.NewFile("a.fly", "x = 1 + 2;")
	a := source.Span{File: f, Start: 4, End: 5}
	b := source.Span{File: f, Start: 8, End: 9}

	got := source.Join(a, b)
	assert.Equal(t, 4, got.Start)
	assert.Equal(t, 9, got.End)
}

func TestSpanNil(t *testing.T) {
	var sp source.Span
	assert.True(t, sp.Nil())
	assert.Equal(t, "", sp.Text())
}
