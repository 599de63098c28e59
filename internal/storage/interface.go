package storage

import (
	"context"
)

// StorageClient defines the interface for profile document storage.
// Documents are small JSON files addressed by a flat object name
// (e.g. "settings.json", "home-airports.json").
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// Store writes a document, overwriting any existing one
	Store(ctx context.Context, name string, data []byte) error

	// Get retrieves a document by name
	Get(ctx context.Context, name string) ([]byte, error)

	// List lists all document names
	List(ctx context.Context) ([]string, error)

	// Exists checks whether a document exists
	Exists(ctx context.Context, name string) (bool, error)
}
