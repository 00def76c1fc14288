// Package gcs serves word lists from a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/gobeaver/cipherkit/corpus"
)

func init() {
	corpus.RegisterDriver("gcs", func(cfg corpus.Config) (corpus.Source, error) {
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("%w: GCS bucket is required", corpus.ErrInvalidConfig)
		}
		var opts []option.ClientOption
		if cfg.GCSCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
		}
		if cfg.GCSEndpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.GCSEndpoint), option.WithoutAuthentication())
		}
		client, err := storage.NewClient(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCS client: %w", err)
		}
		return New(client, cfg.GCSBucket, cfg.GCSPrefix), nil
	})
}

// Adapter provides a Google Cloud Storage implementation of corpus.Source
type Adapter struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a new GCS adapter. The adapter owns client and closes it on Close.
func New(client *storage.Client, bucket, prefix string) *Adapter {
	return &Adapter{client: client, bucket: bucket, prefix: prefix}
}

// Open implements corpus.Source
func (a *Adapter) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	r, err := a.object(filePath).NewReader(ctx)
	if err != nil {
		return nil, mapError("open", filePath, err)
	}
	return r, nil
}

// Exists implements corpus.Source
func (a *Adapter) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := a.object(filePath).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, mapError("exists", filePath, err)
	}
	return true, nil
}

// Close implements corpus.Source
func (a *Adapter) Close() error { return a.client.Close() }

func (a *Adapter) object(filePath string) *storage.ObjectHandle {
	return a.client.Bucket(a.bucket).Object(path.Join(a.prefix, filePath))
}

func mapError(op, filePath string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return &corpus.PathError{Op: op, Path: filePath, Err: corpus.ErrNotExist}
	}
	return &corpus.PathError{Op: op, Path: filePath, Err: err}
}
