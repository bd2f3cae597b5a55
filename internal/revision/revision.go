// Package revision models the version-control state of the workspace at
// invocation time. The state is always an explicit value handed to the
// version resolver, never ambient context read mid-pipeline.
package revision

import (
	"context"
	"os/exec"
	"strings"
)

// DirtyMarker is substituted for the revision when no version-control
// metadata is available or the working tree has uncommitted changes.
const DirtyMarker = "dirty"

// Info identifies the workspace revision for one invocation. A zero Info
// means no usable revision is available.
type Info struct {
	Revision string
}

// Available reports whether a concrete revision identifier is present.
func (i Info) Available() bool { return i.Revision != "" }

// Explicit wraps a caller-supplied revision identifier.
func Explicit(rev string) Info {
	return Info{Revision: strings.TrimSpace(rev)}
}

// Detect probes the version-control state of dir. A missing repository, a
// failing probe, or uncommitted changes all yield an unavailable Info; the
// resolver then falls back to DirtyMarker. Detect never fails the pipeline.
func Detect(ctx context.Context, dir string) Info {
	head, err := git(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil || head == "" {
		return Info{}
	}
	status, err := git(ctx, dir, "status", "--porcelain")
	if err != nil || status != "" {
		return Info{}
	}
	return Info{Revision: head}
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
