package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_InvalidDescriptor(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "pipeline.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`workspace {`), 0o600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err := run(out, errOut, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse descriptor")
}

func TestRun_MissingManifest(t *testing.T) {
	t.Parallel()

	// A valid descriptor pointing at a workspace without a manifest must
	// fail before any build step runs.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "pipeline.hcl")
	descriptor := `
workspace {
  cli_crate = "typst-cli"
  binary    = "typst"
}
`
	require.NoError(t, os.WriteFile(filePath, []byte(descriptor), 0o600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err := run(out, errOut, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest")
}
