package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient stores profile documents in a Google Cloud Storage bucket,
// for deployments where the service does not own a persistent disk
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Store writes a document to the bucket
func (g *GCSClient) Store(ctx context.Context, name string, data []byte) error {
	writer := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write %s to GCS: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS upload of %s: %w", name, err)
	}
	return nil
}

// Get retrieves a document from the bucket
func (g *GCSClient) Get(ctx context.Context, name string) ([]byte, error) {
	reader, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s from GCS: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from GCS: %w", name, err)
	}
	return data, nil
}

// List lists all document names in the bucket, sorted alphabetically
func (g *GCSClient) List(ctx context.Context) ([]string, error) {
	var names []string

	it := g.client.Bucket(g.bucket).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", g.bucket, err)
		}
		names = append(names, attrs.Name)
	}
	sort.Strings(names)

	return names, nil
}

// Exists checks whether a document exists in the bucket
func (g *GCSClient) Exists(ctx context.Context, name string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s in GCS: %w", name, err)
	}
	return true, nil
}
