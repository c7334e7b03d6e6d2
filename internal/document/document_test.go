package document

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	doc := FromString("/cfg/a.conf", "[a:b]\r\nx = 1\n")

	assert.Equal(t, "/cfg/a.conf", doc.Path())
	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, "[a:b]", doc.LineAt(0))
	assert.Equal(t, "x = 1", doc.LineAt(1))
	assert.Equal(t, "", doc.LineAt(2))
	assert.Equal(t, "", doc.LineAt(-1))
	assert.Equal(t, "", doc.LineAt(99))
}

func TestFSLoader(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/main.conf", []byte("[a:b]\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/cfg/sub", 0o755))
	loader := NewLoader(fs)
	ctx := context.Background()

	// --- Act & Assert ---
	assert.True(t, loader.Exists(ctx, "/cfg/main.conf"))
	assert.False(t, loader.Exists(ctx, "/cfg/missing.conf"))
	assert.False(t, loader.Exists(ctx, "/cfg/sub"))

	doc, err := loader.Open(ctx, "/cfg/main.conf")
	require.NoError(t, err)
	assert.Equal(t, "[a:b]", doc.LineAt(0))

	_, err = loader.Open(ctx, "/cfg/missing.conf")
	assert.Error(t, err)
}

func TestFSLoader_OpenHonorsCancellation(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.conf", []byte("x"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(fs).Open(ctx, "/a.conf")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveIncludePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.FromSlash("/cfg/sub/x.inc"), ResolveIncludePath("/cfg/sub/main.conf", "x.inc"))
	assert.Equal(t, filepath.FromSlash("/cfg/shared/x.inc"), ResolveIncludePath("/cfg/sub/main.conf", "../shared/x.inc"))
	assert.Equal(t, filepath.FromSlash("/abs/x.inc"), ResolveIncludePath("/cfg/sub/main.conf", "/abs/x.inc"))
}
