// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a regular file, creating the destination directory and
// preserving the source's permission bits.
func CopyFile(dst, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}

// Install copies src into the directory dir under name, creating dir as
// needed. It returns the installed path.
func Install(dir, name, src string) (string, error) {
	dst := filepath.Join(dir, name)
	if err := CopyFile(dst, src); err != nil {
		return "", err
	}
	return dst, nil
}
