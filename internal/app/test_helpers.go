package app

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/testutil"
)

// SetupAppTest creates an App over fsys with debug logging captured in a
// buffer. Set PIPECONF_TEST_LOGS=true to print the log of each test.
func SetupAppTest(t *testing.T, cfg Config, fsys afero.Fs) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	testApp, err := NewApp(logBuffer, appConfig, fsys)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("PIPECONF_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
