package pipeline

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/specialistvlad/crateforge/internal/fsutil"
)

// CrateInfo names the buildable unit inside the workspace: the CLI crate
// directory under crates/ and the binary it produces.
type CrateInfo struct {
	Crate  string
	Binary string
}

// entrypoint is the crate's main source file relative to the workspace root.
func (c CrateInfo) entrypoint() string {
	return path.Join("crates", c.Crate, "src", "main.rs")
}

// stubMain is the empty entrypoint used for the dependency-only phase, so
// that the external tool compiles the dependency graph without touching
// the program's own code.
const stubMain = "fn main() {}\n"

// stage copies the source selection into dst, preserving layout. Only
// selected files ever reach a build tree.
func stage(set *buildinput.Set, dst string) error {
	for _, rel := range set.Source.Files {
		src := filepath.Join(set.Source.Root, filepath.FromSlash(rel))
		if err := fsutil.CopyFile(filepath.Join(dst, filepath.FromSlash(rel)), src); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
	}
	return nil
}

// stubEntrypoint replaces the CLI crate's entrypoint in the staged tree
// with the empty stub.
func stubEntrypoint(dst string, crate CrateInfo) error {
	target := filepath.Join(dst, filepath.FromSlash(crate.entrypoint()))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(stubMain), 0o644)
}
