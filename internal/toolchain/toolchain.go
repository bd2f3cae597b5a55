// Package toolchain is the boundary to the external build tool. The
// pipeline never compiles anything itself — it decides when the tool runs
// and with which tree and environment, and surfaces the tool's diagnostics
// verbatim when it fails.
package toolchain

import (
	"context"
	"fmt"
)

// BuildSpec describes one blocking invocation of the external tool.
type BuildSpec struct {
	// Dir is the staged workspace tree to build in.
	Dir string
	// Env holds extra environment variables for the invocation, layered
	// over the process environment.
	Env map[string]string
}

// Toolchain runs the two build phases. Implementations are single
// blocking invocations; any parallelism inside a phase belongs to the
// external tool, not to this layer.
type Toolchain interface {
	// BuildDependencies compiles only the external dependency graph of
	// the tree in spec.Dir.
	BuildDependencies(ctx context.Context, spec BuildSpec) error
	// BuildPackage compiles the full program in spec.Dir, reusing
	// whatever compiled dependencies are already present in its target
	// directory.
	BuildPackage(ctx context.Context, spec BuildSpec) error
}

// InvokeError carries the external tool's combined output alongside the
// underlying process error, so callers can surface diagnostics unmodified.
type InvokeError struct {
	Phase  string
	Output string
	Err    error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("toolchain %s failed: %v\n%s", e.Phase, e.Err, e.Output)
}

func (e *InvokeError) Unwrap() error { return e.Err }
