package outputs

import (
	"context"
	"sync"

	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/specialistvlad/crateforge/internal/pipeline"
)

// DefaultAlias is the canonical package name every composition references.
const DefaultAlias = "default"

// Composer exposes the four consumable views over one build graph. All
// views are derived from the same build input set and cache pairing; the
// underlying builds run at most once regardless of how many views are
// resolved, or in which order.
type Composer struct {
	set     *buildinput.Set
	crate   pipeline.CrateInfo
	deps    *pipeline.CacheBuilder
	pkgs    *pipeline.PackageBuilder
	buildID string
	prefix  string
	aliases []string

	mu       sync.Mutex
	built    bool
	artifact *pipeline.Artifact
	buildErr error
}

// NewComposer wires a composer over one build pairing. aliases are extra
// package names beyond "default" and the binary name.
func NewComposer(set *buildinput.Set, crate pipeline.CrateInfo, deps *pipeline.CacheBuilder, pkgs *pipeline.PackageBuilder, buildID, prefix string, aliases []string) *Composer {
	return &Composer{
		set:     set,
		crate:   crate,
		deps:    deps,
		pkgs:    pkgs,
		buildID: buildID,
		prefix:  prefix,
		aliases: aliases,
	}
}

// Package resolves the installable package, building it on first use and
// returning the memoized artifact afterwards. A failed build is memoized
// too: the pipeline never retries internally.
func (c *Composer) Package(ctx context.Context) (*pipeline.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.built {
		return c.artifact, c.buildErr
	}
	c.built = true

	cache, err := c.deps.Build(ctx, c.set, c.crate)
	if err != nil {
		c.buildErr = err
		return nil, err
	}
	c.artifact, c.buildErr = c.pkgs.Build(ctx, c.set, c.crate, cache, c.buildID, c.prefix)
	return c.artifact, c.buildErr
}

// Packages resolves the full named package set. Every name — "default",
// the binary name, and each alias — maps to the identical artifact; there
// is exactly one build behind all of them.
func (c *Composer) Packages(ctx context.Context) (map[string]*pipeline.Artifact, error) {
	art, err := c.Package(ctx)
	if err != nil {
		return nil, err
	}
	set := map[string]*pipeline.Artifact{
		DefaultAlias:   art,
		c.crate.Binary: art,
	}
	for _, alias := range c.aliases {
		set[alias] = art
	}
	return set, nil
}

// Overlay is the re-exportable package set: every named package except
// "default", so a consuming build graph can mount these under its own
// namespace without re-triggering any build logic.
func (c *Composer) Overlay(ctx context.Context) (map[string]*pipeline.Artifact, error) {
	set, err := c.Packages(ctx)
	if err != nil {
		return nil, err
	}
	delete(set, DefaultAlias)
	return set, nil
}
