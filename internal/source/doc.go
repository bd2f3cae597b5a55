// Package source implements the build's source selection: a fixed, ordered
// list of path patterns evaluated with any-match semantics over the
// workspace tree. Exclusion is total — a path matching no pattern is
// invisible to every downstream build step, which is the mechanism by
// which unrelated repository changes never trigger rebuilds.
package source
