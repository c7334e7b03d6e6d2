package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/testutil"
)

func TestParse_AssemblesInstances(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fs := testutil.NewMemWorkspace(t, map[string]string{
		"/cfg/main.conf": "orphan = 1\n" +
			"[src:cWaveSource]\n" +
			"filename = a.wav\n" +
			"\\{sink.inc}\n" +
			"[src:cSomethingElse]\n" +
			"filename = b.wav\n",
		"/cfg/sink.inc": "[sink:cCsvSink]\n" +
			"dmLevel = wave\n",
	})
	walker := NewWalker(document.NewLoader(fs))

	// --- Act ---
	cfg, err := walker.ParseFile(context.Background(), "/cfg/main.conf")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "sink"}, cfg.Names())

	src, ok := cfg.Instance("src")
	require.True(t, ok)
	assert.Equal(t, "cWaveSource", src.TypeName, "first type wins")
	require.Len(t, src.Headers, 2)
	assert.Equal(t, "cWaveSource", src.Headers[0].TypeName)
	assert.Equal(t, "cSomethingElse", src.Headers[1].TypeName)
	assert.Less(t, src.Headers[0].Line, src.Headers[1].Line)
	require.Len(t, src.Assignments, 2)
	assert.Equal(t, "a.wav", src.Assignments[0].Value)
	assert.Equal(t, "b.wav", src.Assignments[1].Value)

	sink, ok := cfg.Instance("sink")
	require.True(t, ok)
	require.Len(t, sink.Assignments, 1)
	assert.Equal(t, "/cfg/sink.inc", sink.Assignments[0].Path())
	assert.Equal(t, "/cfg/sink.inc", sink.Definition().Path())
}

func TestParse_AssignmentsAfterIncludeBelongToIncludedInstance(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, map[string]string{
		"/cfg/main.conf": "[a:cA]\n\\{b.inc}\nx = 1\n",
		"/cfg/b.inc":     "[b:cB]\n",
	})

	cfg, err := NewWalker(document.NewLoader(fs)).ParseFile(context.Background(), "/cfg/main.conf")

	require.NoError(t, err)
	b, ok := cfg.Instance("b")
	require.True(t, ok)
	require.Len(t, b.Assignments, 1, "included content is inlined at the directive")
	a, _ := cfg.Instance("a")
	assert.Empty(t, a.Assignments)
}

func TestParseFile_MissingRoot(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, nil)

	_, err := NewWalker(document.NewLoader(fs)).ParseFile(context.Background(), "/nope.conf")

	assert.Error(t, err)
}
