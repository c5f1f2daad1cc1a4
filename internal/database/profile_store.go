package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nfrund/profilepage/internal/domain"
	"github.com/nfrund/profilepage/internal/storage"
)

// var _ ensures that ProfileStore implements the domain.ProfileRepository interface at compile time.
var _ domain.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore keeps the profile document as a single JSON file in a storage.Store.
type ProfileStore struct {
	store storage.Store
	path  string
}

// NewProfileStore creates a ProfileStore that reads and writes path within store.
func NewProfileStore(store storage.Store, path string) *ProfileStore {
	return &ProfileStore{store: store, path: path}
}

// Get returns the stored document, or domain.ErrNotFound when nothing has been stored.
func (s *ProfileStore) Get(ctx context.Context) (json.RawMessage, error) {
	f, err := s.store.Open(ctx, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := validateProfile(raw); err != nil {
		return nil, fmt.Errorf("stored profile at %s: %w", s.path, err)
	}
	return json.RawMessage(raw), nil
}

// Put replaces the stored document after checking that it is a JSON object.
func (s *ProfileStore) Put(ctx context.Context, doc json.RawMessage) error {
	if err := validateProfile(doc); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	if _, err := s.store.Save(ctx, s.path, &buf); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func validateProfile(raw []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return domain.ErrInvalidProfile
	}
	return nil
}
