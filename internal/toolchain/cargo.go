package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/specialistvlad/crateforge/internal/ctxlog"
)

// Cargo invokes the Rust toolchain's build tool as a subprocess. Dependency
// resolution and fetching are delegated entirely to it; interrupted
// invocations simply leave no artifact and the next run rebuilds.
type Cargo struct {
	// Binary is the executable name, "cargo" unless overridden.
	Binary string
}

// NewCargo returns a Cargo toolchain using the default binary name.
func NewCargo() *Cargo {
	return &Cargo{Binary: "cargo"}
}

// BuildDependencies runs a locked release build of the staged tree. The
// caller stages the tree with the program's entrypoint stubbed out, so
// only the external dependency graph is compiled.
func (c *Cargo) BuildDependencies(ctx context.Context, spec BuildSpec) error {
	return c.run(ctx, "dependency build", spec, "build", "--release", "--locked")
}

// BuildPackage runs the full locked release build.
func (c *Cargo) BuildPackage(ctx context.Context, spec BuildSpec) error {
	return c.run(ctx, "package build", spec, "build", "--release", "--locked")
}

func (c *Cargo) run(ctx context.Context, phase string, spec BuildSpec, args ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Invoking external build tool.", "phase", phase, "dir", spec.Dir)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Dir = spec.Dir
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return &InvokeError{Phase: phase, Output: string(out), Err: err}
	}
	logger.Debug("External build tool finished.", "phase", phase)
	return nil
}
