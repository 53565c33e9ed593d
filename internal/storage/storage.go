// Package storage keeps attachment blobs in an external object store behind
// the afs abstraction, so the same code runs against file://, s3:// or
// mem:// (tests).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

type Store struct {
	fs      afs.Service
	rootURL string
	baseURL string
}

// New returns a store writing under rootURL (an afs URL) and exposing blobs
// at baseURL + "/" + key.
func New(rootURL, baseURL string) *Store {
	return &Store{
		fs:      afs.New(),
		rootURL: strings.TrimRight(rootURL, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save uploads one blob and returns its storage key and public URL. The key
// is random so display names never collide in the store.
func (s *Store) Save(ctx context.Context, name string, reader io.Reader) (string, string, error) {
	key := uuid.NewString() + path.Ext(name)
	if err := s.fs.Upload(ctx, url.Join(s.rootURL, key), 0644, reader); err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return key, s.PublicURL(key), nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.fs.OpenURL(ctx, url.Join(s.rootURL, key))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.fs.Delete(ctx, url.Join(s.rootURL, key))
}

func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
