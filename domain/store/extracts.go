// Package store holds the two flat on-disk sample directories: the
// content-addressed extraction store written by capture, and the labeled
// store written by the labeler.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/distance-collector/domain/sample"
)

const sampleExt = ".png"

// Extracts is a directory of <hex-digest>.png files, at most one per distinct
// sample content. A single writer is assumed.
type Extracts struct {
	dir   string
	known *lru.Cache[string, struct{}]
}

// NewExtracts creates dir if needed. cacheSize bounds the in-memory set of
// digests already seen on disk; values < 1 disable the cache. A remembered
// digest stays a duplicate for the lifetime of e even if the file is moved
// away by the labeler.
func NewExtracts(dir string, cacheSize int) (*Extracts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	e := &Extracts{dir: dir}
	if cacheSize > 0 {
		c, err := lru.New[string, struct{}](cacheSize)
		if err != nil {
			return nil, err
		}
		e.known = c
	}
	return e, nil
}

// Dir returns the store directory.
func (e *Extracts) Dir() string { return e.dir }

// Path returns the file path a sample with the given digest is stored under.
func (e *Extracts) Path(digest string) string {
	return filepath.Join(e.dir, digest+sampleExt)
}

// StoreIfNovel writes s as PNG under its content digest unless a file with
// that name already exists. It reports whether a file was written, the digest
// and the number of bytes written.
func (e *Extracts) StoreIfNovel(s *image.Gray) (bool, string, int64, error) {
	digest := sample.Digest(s)
	if e.known != nil && e.known.Contains(digest) {
		return false, digest, 0, nil
	}
	path := e.Path(digest)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		e.remember(digest)
		return false, digest, 0, nil
	}
	if err != nil {
		return false, digest, 0, err
	}
	bw := bufio.NewWriter(f)
	cw := &countingWriter{w: bw}
	err = imaging.Encode(cw, s, imaging.PNG)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return false, digest, 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, digest, 0, err
	}
	e.remember(digest)
	return true, digest, cw.n, nil
}

// List returns the stored sample paths in lexicographic order.
func (e *Extracts) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(e.dir, "*"+sampleExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (e *Extracts) remember(digest string) {
	if e.known != nil {
		e.known.Add(digest, struct{}{})
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
