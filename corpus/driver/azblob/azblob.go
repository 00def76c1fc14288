// Package azblob serves word lists from an Azure Blob Storage container.
package azblob

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/gobeaver/cipherkit/corpus"
)

func init() {
	corpus.RegisterDriver("azblob", func(cfg corpus.Config) (corpus.Source, error) {
		if cfg.AzureConnectionString == "" || cfg.AzureContainer == "" {
			return nil, fmt.Errorf("%w: Azure connection string and container are required", corpus.ErrInvalidConfig)
		}
		client, err := azblob.NewClientFromConnectionString(cfg.AzureConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure client: %w", err)
		}
		return New(client, cfg.AzureContainer, cfg.AzurePrefix), nil
	})
}

// Adapter provides an Azure Blob Storage implementation of corpus.Source
type Adapter struct {
	client    *azblob.Client
	container string
	prefix    string
}

// New creates a new Azure Blob adapter
func New(client *azblob.Client, container, prefix string) *Adapter {
	return &Adapter{client: client, container: container, prefix: prefix}
}

// Open implements corpus.Source
func (a *Adapter) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, a.blob(filePath), nil)
	if err != nil {
		return nil, mapError("open", filePath, err)
	}
	return resp.Body, nil
}

// Exists implements corpus.Source
func (a *Adapter) Exists(ctx context.Context, filePath string) (bool, error) {
	blob := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(a.blob(filePath))
	_, err := blob.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return false, nil
		}
		return false, mapError("exists", filePath, err)
	}
	return true, nil
}

// Close implements corpus.Source
func (a *Adapter) Close() error { return nil }

func (a *Adapter) blob(filePath string) string {
	return path.Join(a.prefix, filePath)
}

func mapError(op, filePath string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return &corpus.PathError{Op: op, Path: filePath, Err: corpus.ErrNotExist}
	}
	return &corpus.PathError{Op: op, Path: filePath, Err: err}
}
