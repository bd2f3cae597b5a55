package descriptor

import (
	"github.com/hashicorp/hcl/v2"
)

// workspaceBlock declares the buildable unit: where the workspace lives,
// which crate is the CLI, and the binary it produces.
type workspaceBlock struct {
	Root     string `hcl:"root,optional"`
	Manifest string `hcl:"manifest,optional"`
	CLICrate string `hcl:"cli_crate"`
	Binary   string `hcl:"binary"`
}

// platformBlock overrides the native dependency list for one exact
// platform tag. Framework and library lists are kept as expressions and
// evaluated during translation.
type platformBlock struct {
	Tag        string         `hcl:"tag,label"`
	Frameworks hcl.Expression `hcl:"frameworks,optional"`
	Libraries  hcl.Expression `hcl:"libraries,optional"`
}

// toolBlock declares one build-time tool dependency.
type toolBlock struct {
	Name string `hcl:"name,label"`
}

// aliasBlock declares an extra package name resolving to the same artifact.
type aliasBlock struct {
	Name string `hcl:"name,label"`
}

// fileRoot decodes all top-level blocks of a pipeline descriptor file.
type fileRoot struct {
	Workspace *workspaceBlock  `hcl:"workspace,block"`
	Platforms []*platformBlock `hcl:"platform,block"`
	Tools     []*toolBlock     `hcl:"tool,block"`
	Aliases   []*aliasBlock    `hcl:"alias,block"`
}
