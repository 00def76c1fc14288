// Package corpus reads word lists from local disk or object storage.
//
// A Source is a read-only view of one storage backend. Drivers register themselves
// under a name in their package init, so a binary chooses its backends with blank
// imports:
//
//	import (
//	    _ "github.com/gobeaver/cipherkit/corpus/driver/local"
//	    _ "github.com/gobeaver/cipherkit/corpus/driver/s3"
//	)
//
//	src, err := corpus.New(corpus.Config{Driver: "s3", S3Bucket: "wordlists"})
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Common errors
var (
	ErrNotExist      = errors.New("file does not exist")
	ErrNotAllowed    = errors.New("operation not allowed")
	ErrInvalidDriver = errors.New("invalid corpus driver")
	ErrInvalidConfig = errors.New("invalid corpus configuration")
)

// Source is a read-only word list store.
type Source interface {
	// Open returns a reader for the object at path. Callers close it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether path names an object.
	Exists(ctx context.Context, path string) (bool, error)

	// Close releases connections held by the source.
	Close() error
}

// PathError records an error together with the operation and path that caused it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("corpus: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
