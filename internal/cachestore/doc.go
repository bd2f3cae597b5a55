// Package cachestore is the on-disk, content-keyed store for dependency
// cache artifacts. The store is shared across invocations; correctness is
// purely key-based, and writes are atomic so there is no locking layer.
package cachestore
