package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/specialistvlad/crateforge/internal/cachestore"
	"github.com/specialistvlad/crateforge/internal/ctxlog"
	"github.com/specialistvlad/crateforge/internal/toolchain"
)

// CacheArtifact is the opaque handle to a published dependency build. Its
// key is the dependency hash of the build input set that produced it.
type CacheArtifact struct {
	Key string
}

// CacheBuilder produces dependency cache artifacts: compiled external
// dependency graphs reusable across builds whose dependency declarations
// and lockfile are unchanged.
type CacheBuilder struct {
	store *cachestore.Store
	tc    toolchain.Toolchain
}

// NewCacheBuilder wires a cache builder to its store and toolchain.
func NewCacheBuilder(store *cachestore.Store, tc toolchain.Toolchain) *CacheBuilder {
	return &CacheBuilder{store: store, tc: tc}
}

// Build resolves the dependency cache artifact for the input set. A valid
// published artifact is reused without invoking the toolchain; otherwise
// the selection is staged with a stubbed entrypoint, the dependency-only
// build runs, and the resulting target tree is published atomically.
func (b *CacheBuilder) Build(ctx context.Context, set *buildinput.Set, crate CrateInfo) (*CacheArtifact, error) {
	logger := ctxlog.FromContext(ctx)

	key, err := set.DependencyKey()
	if err != nil {
		return nil, &DependencyResolutionError{Err: err}
	}

	if b.store.Has(key) {
		logger.Info("Dependency cache hit, skipping dependency build.", "key", key)
		return &CacheArtifact{Key: key}, nil
	}
	logger.Info("Dependency cache miss, building dependency graph.", "key", key)

	scratch, err := os.MkdirTemp("", "crateforge-deps-*")
	if err != nil {
		return nil, &DependencyResolutionError{Key: key, Err: err}
	}
	defer os.RemoveAll(scratch)

	if err := stage(set, scratch); err != nil {
		return nil, &DependencyResolutionError{Key: key, Err: err}
	}
	if err := stubEntrypoint(scratch, crate); err != nil {
		return nil, &DependencyResolutionError{Key: key, Err: err}
	}

	target := filepath.Join(scratch, "target")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, &DependencyResolutionError{Key: key, Err: err}
	}

	if err := b.tc.BuildDependencies(ctx, toolchain.BuildSpec{Dir: scratch}); err != nil {
		return nil, &DependencyResolutionError{Key: key, Output: invokeOutput(err), Err: err}
	}

	if err := b.store.Put(key, target); err != nil {
		return nil, &DependencyResolutionError{Key: key, Err: err}
	}
	logger.Info("Dependency cache artifact published.", "key", key)
	return &CacheArtifact{Key: key}, nil
}

// invokeOutput pulls the external tool's combined output out of an error
// chain so it can be surfaced verbatim.
func invokeOutput(err error) string {
	var ie *toolchain.InvokeError
	if errors.As(err, &ie) {
		return ie.Output
	}
	return ""
}
