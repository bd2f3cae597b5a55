package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/specialistvlad/crateforge/internal/cachestore"
	"github.com/specialistvlad/crateforge/internal/ctxlog"
	"github.com/specialistvlad/crateforge/internal/descriptor"
	"github.com/specialistvlad/crateforge/internal/manifest"
	"github.com/specialistvlad/crateforge/internal/outputs"
	"github.com/specialistvlad/crateforge/internal/pipeline"
	"github.com/specialistvlad/crateforge/internal/revision"
	"github.com/specialistvlad/crateforge/internal/source"
	"github.com/specialistvlad/crateforge/internal/version"
)

// Run executes the pipeline up to the requested output view. The phases
// run strictly in order: descriptor and manifest first, then metadata
// resolution and source selection, then the composer, which drives the
// dependency build before the package build.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	composer, err := a.compose(ctx, cfg)
	if err != nil {
		return err
	}

	switch cfg.Output {
	case OutputPackage:
		art, err := composer.Package(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(art)

	case OutputApp:
		app, err := composer.App(ctx)
		if err != nil {
			return err
		}
		code, err := app.Run(ctx, cfg.AppArgs)
		if err != nil {
			return err
		}
		if code != 0 {
			return &ExitCodeError{Code: code}
		}
		return nil

	case OutputDevShell:
		return a.printJSON(composer.DevShell())

	case OutputOverlay:
		overlay, err := composer.Overlay(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(overlay)
	}
	return fmt.Errorf("unknown output %q", cfg.Output)
}

// compose assembles the full build graph for one invocation: model,
// manifest, build identifier, source selection, input set, builders.
func (a *App) compose(ctx context.Context, cfg *Config) (*outputs.Composer, error) {
	logger := ctxlog.FromContext(ctx)

	model, err := descriptor.Load(cfg.DescriptorPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Pipeline descriptor loaded.", "root", model.Root, "crate", model.Crate)

	ws, err := manifest.Read(model.ManifestPath)
	if err != nil {
		return nil, err
	}

	rev := revision.Explicit(cfg.Revision)
	if !rev.Available() {
		rev = revision.Detect(ctx, model.Root)
	}
	buildID := version.Resolve(ws.Version, rev)
	logger.Info("Resolved build identifier.", "build_id", buildID)

	sel, err := source.Default().Select(model.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Source selection complete.", "files", len(sel.Files))

	platform := buildinput.Platform(cfg.Platform)
	if platform == "" {
		platform = buildinput.HostPlatform()
	}
	set := buildinput.New(sel, ws.Name, ws.Version, platform, model.PlatformDeps, model.Tools)
	logger.Debug("Build input set assembled.", "platform", platform, "native_deps", len(set.NativeDeps))

	storeDir := cfg.Store
	if storeDir == "" {
		storeDir = filepath.Join(model.Root, ".crateforge", "cache")
	}
	store, err := cachestore.New(storeDir)
	if err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = filepath.Join(model.Root, ".crateforge", "prefix")
	}

	crate := pipeline.CrateInfo{Crate: model.Crate, Binary: model.Binary}
	return outputs.NewComposer(
		set, crate,
		pipeline.NewCacheBuilder(store, a.toolchain),
		pipeline.NewPackageBuilder(store, a.toolchain),
		buildID, prefix, model.Aliases,
	), nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
