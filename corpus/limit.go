package corpus

import (
	"context"
	"errors"
	"io"
)

// ErrTooLarge is returned when an object exceeds the configured size limit.
var ErrTooLarge = errors.New("file exceeds maximum size")

// OpenLimited opens path on src and fails reads past max bytes. max <= 0 disables
// the limit.
func OpenLimited(ctx context.Context, src Source, path string, max int64) (io.ReadCloser, error) {
	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if max <= 0 {
		return rc, nil
	}
	return &limitedReader{rc: rc, remaining: max, path: path}, nil
}

type limitedReader struct {
	rc        io.ReadCloser
	remaining int64
	path      string
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Probe one byte to tell EOF from overflow
		var one [1]byte
		n, err := l.rc.Read(one[:])
		if n > 0 {
			return 0, &PathError{Op: "read", Path: l.path, Err: ErrTooLarge}
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.rc.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedReader) Close() error { return l.rc.Close() }
