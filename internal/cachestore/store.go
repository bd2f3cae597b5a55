package cachestore

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned by Restore when no artifact exists for a key.
var ErrNotFound = errors.New("cachestore: no artifact for key")

// Store is a content-keyed artifact store on local disk. Artifacts are
// tar streams compressed with zstd, named by their cache key. Publishing
// writes to a temporary file and renames it into place, so a failed build
// can never leave a partial entry that a later build would reuse.
type Store struct {
	root string
}

// New opens (creating if necessary) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cachestore: %w", err)
	}
	return &Store{root: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.root, key+".tar.zst")
}

// Has reports whether an artifact is published under key.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Put archives the directory tree at dir and publishes it under key. The
// write is atomic: the artifact appears under its final name only after
// the archive is complete.
func (s *Store) Put(key, dir string) (err error) {
	tmp, err := os.CreateTemp(s.root, "incoming-*.tar.zst")
	if err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw, err := zstd.NewWriter(tmp)
	if err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}
	tw := tar.NewWriter(zw)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("cachestore: archiving %s: %w", dir, err)
	}
	if err = tw.Close(); err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("cachestore: publishing %s: %w", key, err)
	}
	return nil
}

// Restore extracts the artifact published under key into dir, creating it
// if needed. Returns ErrNotFound when the key was never published.
func (s *Store) Restore(key, dir string) error {
	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("cachestore: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("cachestore: %w", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cachestore: reading artifact %s: %w", key, err)
		}
		rel := filepath.FromSlash(hdr.Name)
		if strings.Contains(hdr.Name, "..") || filepath.IsAbs(rel) {
			return fmt.Errorf("cachestore: artifact %s contains unsafe path %q", key, hdr.Name)
		}
		target := filepath.Join(dir, rel)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("cachestore: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("cachestore: %w", err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, hdr.FileInfo().Mode())
			if err != nil {
				return fmt.Errorf("cachestore: %w", err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("cachestore: extracting %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("cachestore: %w", err)
			}
		default:
			// Link and device entries never appear in build target trees.
			return fmt.Errorf("cachestore: artifact %s contains unsupported entry %q", key, hdr.Name)
		}
	}
}
