package buildinput

import (
	"runtime"
	"strings"

	"github.com/specialistvlad/crateforge/internal/source"
)

// Platform is a target platform tag in `<arch>-<os>` form, e.g.
// "aarch64-darwin" or "x86_64-linux".
type Platform string

// Family returns the OS family component of the tag.
func (p Platform) Family() string {
	if i := strings.LastIndex(string(p), "-"); i >= 0 {
		return string(p)[i+1:]
	}
	return string(p)
}

// HostPlatform derives the tag for the machine running the pipeline.
func HostPlatform() Platform {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	return Platform(arch + "-" + runtime.GOOS)
}

// DepKind distinguishes the two flavors of native dependency.
type DepKind string

const (
	Framework DepKind = "framework"
	Library   DepKind = "library"
)

// NativeDep is a platform-level dependency added to the package build and
// the dev shell on the platforms that need it.
type NativeDep struct {
	Name string
	Kind DepKind
}

// ToolDep is a build-time tool dependency, available during compilation
// but absent from the finished package.
type ToolDep struct {
	Name string
}

// DefaultPlatformDeps maps platform families to the extra native
// dependencies their builds require. Only the darwin family carries any;
// every other family resolves to an empty list.
var DefaultPlatformDeps = map[string][]NativeDep{
	"darwin": {
		{Name: "CoreServices", Kind: Framework},
		{Name: "libiconv", Kind: Library},
	},
}

// NativeDepsFor resolves the native dependency list for a target platform.
// overrides, when non-nil, replaces the default table entirely (keyed by
// exact platform tag rather than family). Resolution happens once at
// configuration time; build steps never branch on the platform again.
func NativeDepsFor(p Platform, overrides map[Platform][]NativeDep) []NativeDep {
	if overrides != nil {
		return overrides[p]
	}
	return DefaultPlatformDeps[p.Family()]
}

// Set is the complete configuration shared by every phase of one build
// graph. It is assembled once and treated as read-only afterwards; both
// build phases receive the same value.
type Set struct {
	Source     source.Selection
	Name       string
	Version    string
	Platform   Platform
	NativeDeps []NativeDep
	ToolDeps   []ToolDep
}

// New assembles a Set, resolving the platform-conditional native
// dependencies exactly once.
func New(sel source.Selection, name, version string, platform Platform, overrides map[Platform][]NativeDep, tools []ToolDep) *Set {
	return &Set{
		Source:     sel,
		Name:       name,
		Version:    version,
		Platform:   platform,
		NativeDeps: NativeDepsFor(platform, overrides),
		ToolDeps:   tools,
	}
}
