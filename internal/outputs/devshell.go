package outputs

import "github.com/specialistvlad/crateforge/internal/buildinput"

// DevShell describes the interactive development environment: the
// toolchain plus the same platform-conditional native dependencies the
// package build uses. It never includes the program itself.
type DevShell struct {
	Toolchain  []string
	NativeDeps []buildinput.NativeDep
	ToolDeps   []buildinput.ToolDep
}

// toolchainComponents is the fixed component set a contributor needs: the
// compiler, the package manager, and the standard-library sources.
var toolchainComponents = []string{"rustc", "cargo", "rust-src"}

// DevShell resolves the development environment view. It reads only the
// build input set and triggers no build.
func (c *Composer) DevShell() *DevShell {
	return &DevShell{
		Toolchain:  toolchainComponents,
		NativeDeps: c.set.NativeDeps,
		ToolDeps:   c.set.ToolDeps,
	}
}
