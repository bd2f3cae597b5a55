package pipeline

import "fmt"

// DependencyResolutionError is a failure to fetch or compile the external
// dependency graph during the cache-build phase. It is fatal and nothing
// is published to the cache store.
type DependencyResolutionError struct {
	Key    string
	Output string
	Err    error
}

func (e *DependencyResolutionError) Error() string {
	msg := fmt.Sprintf("dependency build failed (key %s): %v", e.Key, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *DependencyResolutionError) Unwrap() error { return e.Err }

// PackageBuildError is a compilation failure of the program's own source.
// The external tool's diagnostic output is carried unmodified.
type PackageBuildError struct {
	Output string
	Err    error
}

func (e *PackageBuildError) Error() string {
	msg := fmt.Sprintf("package build failed: %v", e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *PackageBuildError) Unwrap() error { return e.Err }

// PostInstallError reports a declared artifact (man page, completion
// script) missing at install time despite a successful compile. It is kept
// distinct from PackageBuildError because it signals a build-script
// contract violation, not a source defect.
type PostInstallError struct {
	Artifact string
	Err      error
}

func (e *PostInstallError) Error() string {
	return fmt.Sprintf("post-install: declared artifact %s missing: %v", e.Artifact, e.Err)
}

func (e *PostInstallError) Unwrap() error { return e.Err }
