package batch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redgush/flycatcher/batch"
)

func TestCompileOrdersResultsByInputNotCompletion(t *testing.T) {
	inputs := []batch.Input{
		{Path: "a.fly", Text: "a = 1;"},
		{Path: "b.fly", Text: "b = 2;"},
		{Path: "c.fly", Text: "c = 3;"},
	}

	results, err := batch.Compile(context.Background(), inputs, batch.Options{MaxParallelism: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, in := range inputs {
		assert.Equal(t, in.Path, results[i].Handoff.Filename)
		assert.True(t, results[i].Handoff.Successful, "diagnostics for %s: %+v", in.Path, results[i].Report.Diagnostics)
	}
}

func TestCompileReportsPerFileFailuresIndependently(t *testing.T) {
	inputs := []batch.Input{
		{Path: "good.fly", Text: "a = 1;"},
		{Path: "bad.fly", Text: "a = 1; b = a + 2.0;"},
	}

	results, err := batch.Compile(context.Background(), inputs, batch.Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Handoff.Successful)
	assert.False(t, results[1].Handoff.Successful)
	assert.NotEmpty(t, results[1].Report.Diagnostics)
}

func TestCompileEmptyInputReturnsNil(t *testing.T) {
	results, err := batch.Compile(context.Background(), nil, batch.Options{})
	require.NoError(t, err)
	assert.Nil(t, results)
}
