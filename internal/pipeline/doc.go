// Package pipeline implements the two-phase build: a dependency-only
// build published to the content-keyed cache store, and the full package
// build that consumes it. The phases are strictly ordered — the cache
// artifact must be finished (or already valid) before the package build
// starts — and neither phase retries failures; errors abort the pipeline
// and surface the external tool's diagnostics verbatim.
package pipeline
