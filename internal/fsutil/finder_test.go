package fsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/testutil"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fs := testutil.NewMemWorkspace(t, map[string]string{
		"/cfg/main.conf":          "",
		"/cfg/shared/io.inc":      "",
		"/cfg/notes.txt":          "",
		"/cfg/shared/deep/a.conf": "",
	})

	// --- Act ---
	files, err := FindFiles(fs, "/cfg", []string{".conf", ".inc"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/main.conf", "/cfg/shared/deep/a.conf", "/cfg/shared/io.inc"}, files)
}

func TestFindFiles_SingleFile(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, map[string]string{"/cfg/notes.txt": ""})

	files, err := FindFiles(fs, "/cfg/notes.txt", []string{".conf"})

	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/notes.txt"}, files)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, nil)

	_, err := FindFiles(fs, "/nowhere", []string{".conf"})

	assert.Error(t, err)
}

func TestFindAll_Deduplicates(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, map[string]string{
		"/cfg/a.conf": "",
		"/cfg/b.conf": "",
	})

	files, err := FindAll(fs, []string{"/cfg/b.conf", "/cfg"}, []string{".conf"})

	require.NoError(t, err)
	assert.Equal(t, []string{"/cfg/b.conf", "/cfg/a.conf"}, files)
}
