package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/crateforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// workspace builds a complete descriptor-plus-workspace tree and returns
// the descriptor path.
func workspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "pipeline.hcl", `
workspace {
  cli_crate = "typst-cli"
  binary    = "typst"
}

alias "typst-unstable" {}
`)
	writeFile(t, root, "Cargo.toml", "[workspace.package]\nname = \"typst\"\nversion = \"0.12.0\"\n")
	writeFile(t, root, "Cargo.lock", "lock-v1\n")
	writeFile(t, root, "build.rs", "fn main() {}\n")
	writeFile(t, root, "crates/typst-cli/src/main.rs", "fn main() { typst_cli::run() }\n")
	return filepath.Join(root, "pipeline.hcl")
}

func newTestApp(t *testing.T, cfg Config, fake *testutil.FakeToolchain) (*App, *Config, *bytes.Buffer) {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	if cfg.Output == "" {
		cfg.Output = OutputPackage
	}
	if cfg.Revision == "" {
		cfg.Revision = "abc1234"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return NewApp(out, &bytes.Buffer{}, validated, fake), validated, out
}

func TestRunPackageOutput(t *testing.T) {
	fake := &testutil.FakeToolchain{Crate: "typst-cli", Binary: "typst"}
	a, cfg, out := newTestApp(t, Config{DescriptorPath: workspace(t)}, fake)

	require.NoError(t, a.Run(context.Background(), cfg))

	var art struct {
		Name    string
		BuildID string
		Bin     string
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &art))
	assert.Equal(t, "typst", art.Name)
	assert.Equal(t, "0.12.0 (abc1234)", art.BuildID)
	assert.FileExists(t, art.Bin)

	assert.Equal(t, 1, fake.DepsCalls)
	assert.Equal(t, 1, fake.PkgCalls)
	require.Len(t, fake.PkgSpecs, 1)
	assert.Equal(t, "0.12.0 (abc1234)", fake.PkgSpecs[0].Env["TYPST_VERSION"])
}

func TestRunOverlayOutput(t *testing.T) {
	fake := &testutil.FakeToolchain{Crate: "typst-cli", Binary: "typst"}
	a, cfg, out := newTestApp(t, Config{DescriptorPath: workspace(t), Output: OutputOverlay}, fake)

	require.NoError(t, a.Run(context.Background(), cfg))

	var overlay map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Bytes(), &overlay))
	assert.NotContains(t, overlay, "default")
	assert.Contains(t, overlay, "typst")
	assert.Contains(t, overlay, "typst-unstable")
}

func TestRunDevShellOutputBuildsNothing(t *testing.T) {
	fake := &testutil.FakeToolchain{Crate: "typst-cli", Binary: "typst"}
	a, cfg, out := newTestApp(t, Config{DescriptorPath: workspace(t), Output: OutputDevShell}, fake)

	require.NoError(t, a.Run(context.Background(), cfg))

	assert.Zero(t, fake.DepsCalls)
	assert.Zero(t, fake.PkgCalls)
	assert.Contains(t, out.String(), "rustc")
}

func TestRunAppOutput(t *testing.T) {
	fake := &testutil.FakeToolchain{Crate: "typst-cli", Binary: "typst"}
	a, cfg, _ := newTestApp(t, Config{DescriptorPath: workspace(t), Output: OutputApp}, fake)

	// The fake's binary is a shell script exiting 0.
	require.NoError(t, a.Run(context.Background(), cfg))
}

func TestRunDependencyCacheReusedAcrossInvocations(t *testing.T) {
	fake := &testutil.FakeToolchain{Crate: "typst-cli", Binary: "typst"}
	path := workspace(t)

	a, cfg, _ := newTestApp(t, Config{DescriptorPath: path}, fake)
	require.NoError(t, a.Run(context.Background(), cfg))

	// A second invocation over the unchanged workspace shares the store
	// and must not rebuild the dependency graph.
	b, cfg2, _ := newTestApp(t, Config{DescriptorPath: path}, fake)
	require.NoError(t, b.Run(context.Background(), cfg2))

	assert.Equal(t, 1, fake.DepsCalls, "second invocation must hit the dependency cache")
	assert.Equal(t, 2, fake.PkgCalls)
}
