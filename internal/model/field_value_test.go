package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/model"
	"github.com/vk/pipeconf/internal/parser"
	"github.com/vk/pipeconf/internal/testutil"
	"github.com/vk/pipeconf/internal/value"
)

func parse(t *testing.T, text string) *model.Config {
	t.Helper()

	cfg, err := parser.NewWalker(document.NewLoader(testutil.NewMemWorkspace(t, nil))).
		Parse(context.Background(), document.FromString("/cfg/main.conf", text))
	require.NoError(t, err)
	return cfg
}

func TestFieldValue(t *testing.T) {
	t.Parallel()

	cat := testutil.SampleCatalog(t)
	cfg := parse(t, "[sink:cCsvSink]\n"+
		"append = 1\n"+
		"filename = first.csv\n"+
		"reader.dmLevel = a;b\n"+
		"filename = second.csv\n"+
		"append = maybe\n"+
		"bogusField = 1\n")
	sink, ok := cfg.Instance("sink")
	require.True(t, ok)

	t.Run("last assignment wins", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "filename")
		require.True(t, ok)
		assert.Equal(t, "second.csv", value.Text(v.Value))
		require.NotNil(t, v.Assignment)
		assert.Equal(t, 4, v.Assignment.Line)
		assert.False(t, v.FromDefault())
	})

	t.Run("uncoercible value falls back to raw text", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "append")
		require.True(t, ok)
		assert.False(t, v.Coerced)
		assert.Equal(t, "maybe", value.Text(v.Value))
	})

	t.Run("default when unassigned", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "delimChar")
		require.True(t, ok)
		assert.True(t, v.FromDefault())
		assert.Equal(t, ";", value.Text(v.Value))
	})

	t.Run("inherited struct field", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "reader.dmLevel")
		require.True(t, ok)
		assert.Equal(t, "a;b", value.Text(v.Value))
	})

	t.Run("inherited default through struct", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "reader.dmInstance")
		require.True(t, ok)
		assert.Equal(t, "dataMemory", value.Text(v.Value))
	})

	t.Run("null default is a value", func(t *testing.T) {
		t.Parallel()
		v, ok := sink.FieldValue(cat, "instanceName")
		require.True(t, ok)
		assert.True(t, v.Value.IsNull())
	})

	t.Run("no assignment and no default", func(t *testing.T) {
		t.Parallel()
		_, ok := sink.FieldValue(cat, "dmLevel")
		assert.False(t, ok)
	})

	t.Run("unresolvable expression", func(t *testing.T) {
		t.Parallel()
		_, ok := sink.FieldValue(cat, "bogusField")
		assert.False(t, ok)
	})
}

func TestFieldValue_IsIdempotent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cat := testutil.SampleCatalog(t)
	cfg := parse(t, "[src:cWaveSource]\nfilename = a.wav\nmonoMixdown = 1\nfilename = b.wav\n")
	src, _ := cfg.Instance("src")
	before := make([]string, len(src.Assignments))
	for i, a := range src.Assignments {
		before[i] = a.Value
	}

	// --- Act ---
	first, ok1 := src.FieldValue(cat, "filename")
	second, ok2 := src.FieldValue(cat, "filename")

	// --- Assert ---
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, value.Text(first.Value), value.Text(second.Value))
	assert.Same(t, first.Assignment, second.Assignment)
	after := make([]string, len(src.Assignments))
	for i, a := range src.Assignments {
		after[i] = a.Value
	}
	assert.Equal(t, before, after, "lookup must not reorder assignments")
}

func TestFieldValue_NumericCoercion(t *testing.T) {
	t.Parallel()

	cat := testutil.SampleCatalog(t)
	cfg := parse(t, "[f:cFramer]\nframeSize = 0.050\n")
	f, _ := cfg.Instance("f")

	v, ok := f.FieldValue(cat, "frameSize")

	require.True(t, ok)
	assert.True(t, v.Coerced)
	assert.Equal(t, "0.05", value.Text(v.Value))
}
