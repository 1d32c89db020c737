// Package storage provides object storage implementations for image uploads.
package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/runmarket/backend/internal/application/catalog"
)

// StubObjectStorage is a development stand-in for a real bucket. Upload URLs
// point nowhere; PublicURL still composes deterministic addresses so the
// rest of the flow can be exercised.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// GenerateUploadURL returns a stub presigned URL.
func (s *StubObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// PublicURL returns where the object would be readable.
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// DeleteObject is a no-op that always succeeds.
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
