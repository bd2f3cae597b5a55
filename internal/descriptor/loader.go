package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/crateforge/internal/buildinput"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Model is the translated, format-agnostic pipeline descriptor.
type Model struct {
	// Root is the workspace root, resolved relative to the descriptor file.
	Root string
	// ManifestPath is the workspace manifest, resolved under Root.
	ManifestPath string
	Crate        string
	Binary       string
	// PlatformDeps is nil when the descriptor declares no platform blocks,
	// in which case the built-in platform table applies.
	PlatformDeps map[buildinput.Platform][]buildinput.NativeDep
	Tools        []buildinput.ToolDep
	Aliases      []string
}

// Load parses the descriptor file at path and translates it into the
// model. Any parse or decode problem aborts before a build step runs.
func Load(path string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode descriptor %s: %w", path, diags)
	}
	if root.Workspace == nil {
		return nil, fmt.Errorf("descriptor %s: missing required workspace block", path)
	}

	ws := root.Workspace
	if ws.Root == "" {
		ws.Root = "."
	}
	if ws.Manifest == "" {
		ws.Manifest = "Cargo.toml"
	}

	base := filepath.Dir(path)
	model := &Model{
		Root:   filepath.Join(base, filepath.FromSlash(ws.Root)),
		Crate:  ws.CLICrate,
		Binary: ws.Binary,
	}
	model.ManifestPath = filepath.Join(model.Root, filepath.FromSlash(ws.Manifest))

	if len(root.Platforms) > 0 {
		model.PlatformDeps = make(map[buildinput.Platform][]buildinput.NativeDep, len(root.Platforms))
		for _, p := range root.Platforms {
			deps, err := translatePlatform(p)
			if err != nil {
				return nil, fmt.Errorf("descriptor %s: platform %q: %w", path, p.Tag, err)
			}
			model.PlatformDeps[buildinput.Platform(p.Tag)] = deps
		}
	}
	for _, tool := range root.Tools {
		model.Tools = append(model.Tools, buildinput.ToolDep{Name: tool.Name})
	}
	for _, alias := range root.Aliases {
		model.Aliases = append(model.Aliases, alias.Name)
	}
	return model, nil
}

// translatePlatform evaluates a platform block's framework and library
// expressions into the native dependency list, frameworks first.
func translatePlatform(p *platformBlock) ([]buildinput.NativeDep, error) {
	frameworks, err := stringList(p.Frameworks)
	if err != nil {
		return nil, fmt.Errorf("frameworks: %w", err)
	}
	libraries, err := stringList(p.Libraries)
	if err != nil {
		return nil, fmt.Errorf("libraries: %w", err)
	}

	deps := make([]buildinput.NativeDep, 0, len(frameworks)+len(libraries))
	for _, name := range frameworks {
		deps = append(deps, buildinput.NativeDep{Name: name, Kind: buildinput.Framework})
	}
	for _, name := range libraries {
		deps = append(deps, buildinput.NativeDep{Name: name, Kind: buildinput.Library})
	}
	return deps, nil
}

// stringList evaluates an optional expression into a list of strings.
func stringList(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v.AsString())
	}
	return out, nil
}
