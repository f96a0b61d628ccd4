// Package storage reads the object-storage bucket that backs the
// "view documents" screen: listing objects and minting signed read URLs.
package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

const (
	// ListLimit caps a listing call; no pagination cursor is followed.
	ListLimit = 100

	DefaultSignedURLTTL = 3600 * time.Second
)

var (
	ErrStorageList    = errors.New("storage list failed")
	ErrSignedURL      = errors.New("create signed url failed")
	ErrObjectNotFound = errors.New("object not found")
)

// Provider is an object-storage backend.
type Provider interface {
	// List returns at most ListLimit objects, newest first.
	List(ctx context.Context) ([]models.StorageObject, error)
	// CreateSignedURL mints a fresh read URL valid for expiresIn.
	CreateSignedURL(ctx context.Context, name string, expiresIn time.Duration) (*models.SignedURL, error)
	// Find looks one object up by exact name.
	Find(ctx context.Context, name string) (*models.StorageObject, error)
}

// StorageError carries the storage service's own message.
type StorageError struct {
	StatusCode int
	Message    string
}

func (e *StorageError) Error() string { return e.Message }

// Message extracts the text a user should see for a storage failure.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *StorageError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}

// escapeObjectPath escapes each segment of an object name but keeps the
// folder separators.
func escapeObjectPath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
