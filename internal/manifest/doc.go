// Package manifest reads the workspace descriptor document. The manifest
// format itself is an external collaborator: it is treated as an opaque
// nested key-value document from which only the `workspace.package.name`
// and `workspace.package.version` fields are extracted.
package manifest
