package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/specialistvlad/crateforge/internal/cachestore"
	"github.com/specialistvlad/crateforge/internal/ctxlog"
	"github.com/specialistvlad/crateforge/internal/fsutil"
	"github.com/specialistvlad/crateforge/internal/toolchain"
)

// GenArtifactsEnv names the environment variable telling the build script
// where to deposit generated man pages and completions, and
// GenArtifactsDir is its fixed value.
const (
	GenArtifactsEnv = "GEN_ARTIFACTS"
	GenArtifactsDir = "artifacts"
)

// VersionEnv derives the environment variable that carries the build
// identifier into the compiled program, e.g. TYPST_VERSION for typst.
func VersionEnv(binary string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, binary)
	return name + "_VERSION"
}

// Artifact is the finished package: the installed program plus its
// post-install files under one prefix.
type Artifact struct {
	Name    string
	Version string
	BuildID string
	Key     string
	Prefix  string
	Bin     string
}

// PackageBuilder builds the full program against a finished dependency
// cache artifact and runs the fixed post-install sequence.
type PackageBuilder struct {
	store *cachestore.Store
	tc    toolchain.Toolchain
}

// NewPackageBuilder wires a package builder to its store and toolchain.
func NewPackageBuilder(store *cachestore.Store, tc toolchain.Toolchain) *PackageBuilder {
	return &PackageBuilder{store: store, tc: tc}
}

// Build stages the full selection, restores the dependency cache into the
// tree's target directory, runs the full build with the generated-artifact
// and version constants set, installs the binary under prefix, and runs
// post-install. The cache artifact must be finished before Build is called.
func (b *PackageBuilder) Build(ctx context.Context, set *buildinput.Set, crate CrateInfo, cache *CacheArtifact, buildID, prefix string) (*Artifact, error) {
	logger := ctxlog.FromContext(ctx)

	key, err := set.PackageKey()
	if err != nil {
		return nil, &PackageBuildError{Err: err}
	}

	scratch, err := os.MkdirTemp("", "crateforge-pkg-*")
	if err != nil {
		return nil, &PackageBuildError{Err: err}
	}
	defer os.RemoveAll(scratch)

	if err := stage(set, scratch); err != nil {
		return nil, &PackageBuildError{Err: err}
	}
	if err := b.store.Restore(cache.Key, filepath.Join(scratch, "target")); err != nil {
		return nil, &PackageBuildError{Err: fmt.Errorf("restoring dependency cache: %w", err)}
	}
	logger.Info("Dependency cache restored into build tree.", "key", cache.Key)

	spec := toolchain.BuildSpec{
		Dir: scratch,
		Env: map[string]string{
			GenArtifactsEnv:          GenArtifactsDir,
			VersionEnv(crate.Binary): buildID,
		},
	}
	if err := b.tc.BuildPackage(ctx, spec); err != nil {
		return nil, &PackageBuildError{Output: invokeOutput(err), Err: err}
	}

	builtBin := filepath.Join(scratch, "target", "release", crate.Binary)
	if _, err := os.Stat(builtBin); err != nil {
		return nil, &PackageBuildError{Err: fmt.Errorf("built binary missing: %w", err)}
	}

	bin, err := fsutil.Install(filepath.Join(prefix, "bin"), crate.Binary, builtBin)
	if err != nil {
		return nil, &PackageBuildError{Err: err}
	}
	if err := os.Chmod(bin, 0o755); err != nil {
		return nil, &PackageBuildError{Err: err}
	}

	if err := b.postInstall(ctx, scratch, crate, prefix); err != nil {
		return nil, err
	}

	logger.Info("Package built.", "name", set.Name, "version", buildID, "prefix", prefix)
	return &Artifact{
		Name:    set.Name,
		Version: set.Version,
		BuildID: buildID,
		Key:     key,
		Prefix:  prefix,
		Bin:     bin,
	}, nil
}

// postInstall copies the generated man pages and shell completions from
// the build tree's artifacts directory into the install prefix. Bash and
// fish completions install under their native names; the `_<tool>` file is
// installed explicitly as the zsh completion.
func (b *PackageBuilder) postInstall(ctx context.Context, scratch string, crate CrateInfo, prefix string) error {
	logger := ctxlog.FromContext(ctx)
	artDir := filepath.Join(scratch, "crates", crate.Crate, GenArtifactsDir)

	manPages, err := filepath.Glob(filepath.Join(artDir, "*.1"))
	if err != nil {
		return &PostInstallError{Artifact: "*.1", Err: err}
	}
	if len(manPages) == 0 {
		return &PostInstallError{Artifact: "*.1", Err: os.ErrNotExist}
	}
	for _, page := range manPages {
		if _, err := fsutil.Install(filepath.Join(prefix, "share", "man", "man1"), filepath.Base(page), page); err != nil {
			return &PostInstallError{Artifact: filepath.Base(page), Err: err}
		}
	}

	completions := []struct {
		src string
		dir string
		dst string
	}{
		{crate.Binary + ".bash", filepath.Join("share", "bash-completion", "completions"), crate.Binary},
		{crate.Binary + ".fish", filepath.Join("share", "fish", "vendor_completions.d"), crate.Binary + ".fish"},
		{"_" + crate.Binary, filepath.Join("share", "zsh", "site-functions"), "_" + crate.Binary},
	}
	for _, c := range completions {
		src := filepath.Join(artDir, c.src)
		if _, err := os.Stat(src); err != nil {
			return &PostInstallError{Artifact: c.src, Err: err}
		}
		if _, err := fsutil.Install(filepath.Join(prefix, c.dir), c.dst, src); err != nil {
			return &PostInstallError{Artifact: c.src, Err: err}
		}
	}

	logger.Debug("Post-install complete.", "man_pages", len(manPages), "completions", len(completions))
	return nil
}
