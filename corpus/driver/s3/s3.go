// Package s3 serves word lists from an S3-compatible bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gobeaver/cipherkit/corpus"
)

func init() {
	corpus.RegisterDriver("s3", func(cfg corpus.Config) (corpus.Source, error) {
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("%w: S3 bucket is required", corpus.ErrInvalidConfig)
		}
		client, err := NewClient(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return New(client, cfg.S3Bucket, WithPrefix(cfg.S3Prefix)), nil
	})
}

// Adapter provides an S3 implementation of corpus.Source
type Adapter struct {
	client *s3.Client
	bucket string
	prefix string
}

// AdapterOption is a function that configures Adapter
type AdapterOption func(*Adapter)

// WithPrefix sets the prefix for S3 objects
func WithPrefix(prefix string) AdapterOption {
	return func(a *Adapter) {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		a.prefix = prefix
	}
}

// NewClient builds an S3 client from configuration. Static credentials are used when
// both key fields are set; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg corpus.Config) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3ForcePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	}), nil
}

// New creates a new S3 adapter
func New(client *s3.Client, bucket string, options ...AdapterOption) *Adapter {
	adapter := &Adapter{
		client: client,
		bucket: bucket,
	}
	for _, option := range options {
		option(adapter)
	}
	return adapter
}

// Open implements corpus.Source
func (a *Adapter) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	resp, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(filePath)),
	})
	if err != nil {
		return nil, mapS3Error("open", filePath, err)
	}
	return resp.Body, nil
}

// Exists implements corpus.Source
func (a *Adapter) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(filePath)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, mapS3Error("exists", filePath, err)
	}
	return true, nil
}

// Close implements corpus.Source
func (a *Adapter) Close() error { return nil }

func (a *Adapter) key(filePath string) string {
	return path.Join(a.prefix, filePath)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &notFound)
}

func mapS3Error(op, filePath string, err error) error {
	if isNotFound(err) {
		return &corpus.PathError{Op: op, Path: filePath, Err: corpus.ErrNotExist}
	}
	return &corpus.PathError{Op: op, Path: filePath, Err: err}
}
