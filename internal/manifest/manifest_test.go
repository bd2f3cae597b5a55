package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	t.Run("extracts workspace package fields", func(t *testing.T) {
		path := writeManifest(t, `
[workspace]
members = ["crates/*"]

[workspace.package]
name = "typst"
version = "0.12.0"
edition = "2021"

[workspace.dependencies]
comemo = "0.4"
`)
		ws, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, "typst", ws.Name)
		assert.Equal(t, "0.12.0", ws.Version)
	})

	t.Run("idempotent for an unchanged file", func(t *testing.T) {
		path := writeManifest(t, "[workspace.package]\nname = \"typst\"\nversion = \"0.12.0\"\n")
		a, err := Read(path)
		require.NoError(t, err)
		b, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "absent.toml"))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "not readable")
	})

	t.Run("malformed document", func(t *testing.T) {
		path := writeManifest(t, "[workspace.package\nversion=")
		_, err := Read(path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "malformed")
	})

	t.Run("missing version", func(t *testing.T) {
		path := writeManifest(t, "[workspace.package]\nname = \"typst\"\n")
		_, err := Read(path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "workspace.package.version")
	})

	t.Run("missing name", func(t *testing.T) {
		path := writeManifest(t, "[workspace.package]\nversion = \"0.12.0\"\n")
		_, err := Read(path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "workspace.package.name")
	})
}
