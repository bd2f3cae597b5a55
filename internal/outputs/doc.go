// Package outputs fans the finished build out into its four consumable
// views: the installable package, the runnable app wrapper, the
// development shell, and the re-exportable overlay set. Views are
// explicit memoized accessors — each computes-or-returns the cached
// artifact, guaranteeing a single build per pairing without relying on
// lazy evaluation.
package outputs
