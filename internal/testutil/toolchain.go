// Package testutil provides shared helpers for pipeline tests, chiefly a
// fake toolchain that records invocations instead of compiling anything.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/specialistvlad/crateforge/internal/toolchain"
)

// FakeToolchain is a Toolchain that counts invocations and fabricates the
// outputs a real build would produce: a target tree for the dependency
// phase, and a binary plus generated artifacts for the package phase.
type FakeToolchain struct {
	// Crate and Binary mirror the pipeline's CrateInfo.
	Crate  string
	Binary string

	// DepsErr and PkgErr, when set, are returned by the respective phase.
	DepsErr error
	PkgErr  error

	// OmitArtifact suppresses creation of one generated artifact file,
	// simulating a build-script contract violation.
	OmitArtifact string

	mu        sync.Mutex
	DepsCalls int
	PkgCalls  int
	DepsSpecs []toolchain.BuildSpec
	PkgSpecs  []toolchain.BuildSpec
	// DepsEntrypoints captures the CLI crate's main source as seen by
	// each dependency build. Build trees are ephemeral, so the content is
	// read at invocation time.
	DepsEntrypoints []string
}

// BuildDependencies records the call and drops a marker object into the
// target tree so the published cache artifact is non-empty.
func (f *FakeToolchain) BuildDependencies(ctx context.Context, spec toolchain.BuildSpec) error {
	entry, _ := os.ReadFile(filepath.Join(spec.Dir, "crates", f.Crate, "src", "main.rs"))
	f.mu.Lock()
	f.DepsCalls++
	f.DepsSpecs = append(f.DepsSpecs, spec)
	f.DepsEntrypoints = append(f.DepsEntrypoints, string(entry))
	f.mu.Unlock()

	if f.DepsErr != nil {
		return f.DepsErr
	}
	depsDir := filepath.Join(spec.Dir, "target", "release", "deps")
	if err := os.MkdirAll(depsDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(depsDir, "libdep.rlib"), []byte("compiled dependency"), 0o644)
}

// BuildPackage records the call and fabricates the binary and the
// generated man page and completion scripts.
func (f *FakeToolchain) BuildPackage(ctx context.Context, spec toolchain.BuildSpec) error {
	f.mu.Lock()
	f.PkgCalls++
	f.PkgSpecs = append(f.PkgSpecs, spec)
	f.mu.Unlock()

	if f.PkgErr != nil {
		return f.PkgErr
	}

	releaseDir := filepath.Join(spec.Dir, "target", "release")
	if err := os.MkdirAll(releaseDir, 0o755); err != nil {
		return err
	}
	bin := "#!/bin/sh\nexit 0\n"
	if err := os.WriteFile(filepath.Join(releaseDir, f.Binary), []byte(bin), 0o755); err != nil {
		return err
	}

	artDir := filepath.Join(spec.Dir, "crates", f.Crate, "artifacts")
	if err := os.MkdirAll(artDir, 0o755); err != nil {
		return err
	}
	for _, name := range []string{
		f.Binary + ".1",
		f.Binary + ".bash",
		f.Binary + ".fish",
		"_" + f.Binary,
	} {
		if name == f.OmitArtifact {
			continue
		}
		if err := os.WriteFile(filepath.Join(artDir, name), []byte(name+"\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}
