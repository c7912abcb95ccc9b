// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/catr/internal/observability"
)

// resetForTest isolates a test from the developer's environment: no config
// file is discovered in $HOME and files are served from memFs.
func resetForTest(t *testing.T, memFs afero.Fs) {
	t.Helper()

	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	original := newFs
	newFs = func() afero.Fs { return memFs }
	t.Cleanup(func() {
		newFs = original
		homedir.DisableCache = false
		observability.ResetForTest()
	})
}

// newMemFs returns a memory filesystem holding the given files.
func newMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(memFs, name, []byte(content), 0o644))
	}
	return memFs
}

// executeCommand runs a pristine root command and captures both streams.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// A nil slice would make cobra fall back to os.Args, i.e. the test flags.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// createTempConfig writes a YAML config file and returns its path.
func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
