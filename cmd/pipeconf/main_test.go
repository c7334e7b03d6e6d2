package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/cli"
	"github.com/vk/pipeconf/internal/testutil"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_CheckOnDisk(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteTempWorkspace(t, map[string]string{
		"symbols.json":  testutil.SampleCatalogJSON,
		"cfg/main.conf": "[src:cWaveSource]\nfilename = in.wav\nmonoMixdown = 1\n\\{missing.inc}\n",
	})
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{
		"--catalog", filepath.Join(root, "symbols.json"),
		"-C", root,
		"check", filepath.Join(root, "cfg"),
	})

	// --- Assert ---
	require.NoError(t, err, "warnings alone should not fail the check")
	assert.Contains(t, out.String(), `warning: Included file "missing.inc" does not exist.`)
	assert.Contains(t, out.String(), "0 errors, 1 warning in 1 file.")
	_, statErr := os.Stat(filepath.Join(root, "pipeconf.hcl"))
	assert.True(t, os.IsNotExist(statErr), "no workspace file is needed")
}
