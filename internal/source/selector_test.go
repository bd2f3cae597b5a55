package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(rel+"\n"), 0o644))
}

func TestDefaultPatternsMatching(t *testing.T) {
	s := Default()

	included := []string{
		"Cargo.toml",
		"Cargo.lock",
		"build.rs",
		"crates/typst-cli/src/main.rs",
		"assets/icon.svg",
		"tests/suite/layout.typ",
	}
	for _, rel := range included {
		assert.True(t, s.Matches(rel), "expected %s to be selected", rel)
	}

	excluded := []string{
		"README.md",
		"docs/guide.md",
		".github/workflows/ci.yml",
		"Cargo.toml.orig",
		"xcrates/foo.rs",
	}
	for _, rel := range excluded {
		assert.False(t, s.Matches(rel), "expected %s to be invisible", rel)
	}
}

func TestSelect(t *testing.T) {
	t.Run("workspace scenario excludes README", func(t *testing.T) {
		root := t.TempDir()
		for _, rel := range []string{
			"crates/x/src/main.rs", "README.md", "Cargo.toml", "Cargo.lock", "build.rs",
		} {
			writeFile(t, root, rel)
		}

		sel, err := Default().Select(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Cargo.lock", "Cargo.toml", "build.rs", "crates/x/src/main.rs",
		}, sel.Files)
	})

	t.Run("union semantics include each file once", func(t *testing.T) {
		// A pattern set with deliberate overlap.
		s, err := NewSelector([]string{`^crates(/.*)?$`, `.*\.rs$`})
		require.NoError(t, err)

		root := t.TempDir()
		writeFile(t, root, "crates/x/lib.rs")

		sel, err := s.Select(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"crates/x/lib.rs"}, sel.Files)
	})

	t.Run("deterministic order", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "crates/b.rs")
		writeFile(t, root, "crates/a.rs")
		writeFile(t, root, "Cargo.toml")

		sel, err := Default().Select(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cargo.toml", "crates/a.rs", "crates/b.rs"}, sel.Files)
	})

	t.Run("invalid pattern is rejected", func(t *testing.T) {
		_, err := NewSelector([]string{`^(`})
		assert.ErrorContains(t, err, "invalid source pattern")
	})
}

func TestDependencyFiles(t *testing.T) {
	sel := Selection{Files: []string{
		"Cargo.lock", "Cargo.toml", "assets/icon.svg", "build.rs",
		"crates/typst-cli/src/main.rs", "tests/suite/layout.typ",
	}}
	assert.Equal(t, []string{"Cargo.lock", "Cargo.toml", "build.rs"}, sel.DependencyFiles())
}
