package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Workspace is the metadata extracted from the workspace manifest. It is
// read once per invocation and never mutated afterwards.
type Workspace struct {
	Name    string
	Version string
}

// ParseError reports a manifest that is missing, malformed, or lacking the
// required `workspace.package` fields. It is fatal: no build step runs
// after it.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// document mirrors the nested key-value layout of the manifest. Only the
// `workspace.package` table is interpreted; everything else is opaque.
type document struct {
	Workspace struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	} `toml:"workspace"`
}

// Read loads the workspace manifest at path and extracts
// `workspace.package.{name,version}`. It has no side effects and returns
// identical results for an unchanged file.
func Read(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "manifest not readable", Err: err}
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: "malformed manifest", Err: err}
	}

	ws := &Workspace{
		Name:    doc.Workspace.Package.Name,
		Version: doc.Workspace.Package.Version,
	}
	if ws.Name == "" {
		return nil, &ParseError{Path: path, Reason: "missing workspace.package.name"}
	}
	if ws.Version == "" {
		return nil, &ParseError{Path: path, Reason: "missing workspace.package.version"}
	}
	return ws, nil
}
