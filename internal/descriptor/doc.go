// Package descriptor loads the declarative pipeline descriptor: an HCL
// file naming the workspace, the CLI crate and binary, per-platform native
// dependency overrides, build-time tool dependencies, and extra package
// aliases. The HCL-specific schema is translated into a format-agnostic
// model consumed by the rest of the pipeline.
package descriptor
