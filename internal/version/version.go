// Package version computes the build identifier baked into the compiled
// program. The identifier is a pure function of the manifest version and
// the revision info for the invocation; it is fixed at build time and only
// reported (not recomputed) by the program at run time.
package version

import (
	"fmt"

	"github.com/specialistvlad/crateforge/internal/revision"
)

// Resolve combines the manifest version with the revision identifier into
// the display string `"{version} ({revision})"`. An unavailable revision is
// rendered with the dirty marker.
func Resolve(version string, rev revision.Info) string {
	r := rev.Revision
	if !rev.Available() {
		r = revision.DirtyMarker
	}
	return fmt.Sprintf("%s (%s)", version, r)
}
