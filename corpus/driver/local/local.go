// Package local serves word lists from a directory on disk.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobeaver/cipherkit/corpus"
)

func init() {
	corpus.RegisterDriver("local", func(cfg corpus.Config) (corpus.Source, error) {
		return New(cfg.LocalBasePath)
	})
}

// Adapter provides a local filesystem implementation of corpus.Source
type Adapter struct {
	root string
}

// New creates a new local adapter rooted at root. The directory must exist.
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &corpus.PathError{Op: "open", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &corpus.PathError{Op: "open", Path: root, Err: corpus.ErrInvalidConfig}
	}
	return &Adapter{root: absRoot}, nil
}

// Open implements corpus.Source
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := a.resolve("open", path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &corpus.PathError{Op: "open", Path: path, Err: corpus.ErrNotExist}
		}
		return nil, &corpus.PathError{Op: "open", Path: path, Err: err}
	}
	return f, nil
}

// Exists implements corpus.Source
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fullPath, err := a.resolve("exists", path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &corpus.PathError{Op: "exists", Path: path, Err: err}
	}
	return !info.IsDir(), nil
}

// Close implements corpus.Source
func (a *Adapter) Close() error { return nil }

func (a *Adapter) resolve(op, path string) (string, error) {
	fullPath := filepath.Join(a.root, filepath.Clean("/"+path))
	if !isPathUnderRoot(a.root, fullPath) {
		return "", &corpus.PathError{Op: op, Path: path, Err: corpus.ErrNotAllowed}
	}
	return fullPath, nil
}

func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
