package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultPatterns is the fixed, ordered inclusion list for a crate
// workspace: the build-relevant directories, the manifest/lockfile pair,
// and the build-script file. The exact contents are a cache-correctness
// invariant: a file outside this set can never invalidate a build.
var DefaultPatterns = []string{
	`^(assets|crates|tests)(/.*)?$`,
	`^Cargo\.(toml|lock)$`,
	`^build\.rs$`,
}

// Selector filters a source tree down to the paths matching at least one
// of its patterns. Matching is evaluated against slash-separated paths
// relative to the tree root, with short-circuit any-match semantics.
type Selector struct {
	patterns []*regexp.Regexp
}

// NewSelector compiles an ordered pattern list into a Selector.
func NewSelector(patterns []string) (*Selector, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("selector requires at least one pattern")
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Selector{patterns: compiled}, nil
}

// Default returns a Selector over DefaultPatterns.
func Default() *Selector {
	s, err := NewSelector(DefaultPatterns)
	if err != nil {
		panic(err) // DefaultPatterns is a compile-time constant list
	}
	return s
}

// Matches reports whether the relative slash path is visible to the build.
func (s *Selector) Matches(rel string) bool {
	for _, re := range s.patterns {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Selection is the ordered file set visible to every downstream build
// step. Paths are slash-separated, relative to Root, sorted, and unique.
type Selection struct {
	Root  string
	Files []string
}

// Select walks the tree rooted at root and returns the minimal file set
// matching at least one pattern. Overlapping patterns have union
// semantics: a file is included exactly once.
func (s *Selector) Select(root string) (Selection, error) {
	seen := make(map[string]struct{})
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !s.Matches(rel) {
			return nil
		}
		if _, ok := seen[rel]; !ok {
			seen[rel] = struct{}{}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return Selection{}, fmt.Errorf("selecting sources under %s: %w", root, err)
	}

	sort.Strings(files)
	return Selection{Root: root, Files: files}, nil
}

// DependencyFiles returns the subset of the selection that declares the
// external dependency graph rather than the program's own source: every
// selected file outside the workspace directories. For the default
// patterns this is the manifest, the lockfile, and the build script.
func (sel Selection) DependencyFiles() []string {
	var out []string
	for _, f := range sel.Files {
		if !strings.Contains(f, "/") {
			out = append(out, f)
		}
	}
	return out
}
