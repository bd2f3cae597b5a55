// Package app wires the pipeline together for one invocation: descriptor
// loading, manifest reading, build identifier resolution, source
// selection, the two-phase build, and the requested output view.
package app
