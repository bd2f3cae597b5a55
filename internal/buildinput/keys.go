package buildinput

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DependencyKey hashes every field of the Set except the program's own
// source files: the metadata plus the dependency declaration files
// (manifest, lockfile, build script). Reusing a cache artifact across
// builds is valid precisely while this key is unchanged.
func (s *Set) DependencyKey() (string, error) {
	return s.hash(s.Source.DependencyFiles())
}

// PackageKey hashes the full Set including every selected source file. Two
// builds with equal package keys produce the same artifact.
func (s *Set) PackageKey() (string, error) {
	return s.hash(s.Source.Files)
}

// hash folds the Set metadata and the named files (paths and contents)
// into a hex digest. Files are hashed in their sorted selection order, so
// the digest is deterministic for an unchanged tree.
func (s *Set) hash(files []string) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "name=%s\nversion=%s\nplatform=%s\n", s.Name, s.Version, s.Platform)
	for _, d := range s.NativeDeps {
		fmt.Fprintf(h, "native=%s:%s\n", d.Kind, d.Name)
	}
	for _, d := range s.ToolDeps {
		fmt.Fprintf(h, "tool=%s\n", d.Name)
	}
	for _, rel := range files {
		f, err := os.Open(filepath.Join(s.Source.Root, filepath.FromSlash(rel)))
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", rel, err)
		}
		fmt.Fprintf(h, "file=%s\n", rel)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", rel, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
