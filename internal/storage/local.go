package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localUploader struct {
	root    string
	baseURL string
}

// NewLocalUploader stores media below root and serves them under baseURL.
func NewLocalUploader(root, baseURL string) (FileUploader, error) {
	if root == "" {
		return nil, fmt.Errorf("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &localUploader{root: root, baseURL: baseURL}, nil
}

func (u *localUploader) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(u.root, filepath.FromSlash(clean)), nil
}

func (u *localUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	target, err := u.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file (key: %s): %w", key, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write media file (key: %s): %w", key, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *localUploader) Delete(ctx context.Context, key string) error {
	target, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file (key: %s): %w", key, err)
	}
	return nil
}

func (u *localUploader) GetPublicURL(key string) string {
	return joinPublicURL(u.baseURL, key)
}
