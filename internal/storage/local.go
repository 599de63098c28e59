package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalStorageClient stores profile documents on the local filesystem
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a local storage client rooted at baseDir
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements the same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// Store writes a document to the base directory
func (l *LocalStorageClient) Store(ctx context.Context, name string, data []byte) error {
	path, err := l.resolve(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Get reads a document from the base directory
func (l *LocalStorageClient) Get(ctx context.Context, name string) ([]byte, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// List lists all document names, sorted alphabetically
func (l *LocalStorageClient) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.baseDir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// Exists checks whether a document exists
func (l *LocalStorageClient) Exists(ctx context.Context, name string) (bool, error) {
	path, err := l.resolve(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return true, nil
}

// resolve maps an object name to a path inside the base directory,
// rejecting names that would escape it
func (l *LocalStorageClient) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(l.baseDir, name), nil
}
