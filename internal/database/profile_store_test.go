package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nfrund/profilepage/internal/domain"
	"github.com/nfrund/profilepage/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ProfileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewProfileStore(storage.NewAferoStore(fs), "data/profile.json"), fs
}

func TestProfileStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileStore_PutThenGet(t *testing.T) {
	s, fs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, json.RawMessage(`{ "name": "Alice",  "age": 30 }`)))

	onDisk, err := afero.ReadFile(fs, "data/profile.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Alice","age":30}`, string(onDisk), "document is stored compacted")

	doc, err := s.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","age":30}`, string(doc))
}

func TestProfileStore_PutRejectsNonObjects(t *testing.T) {
	s, fs := newTestStore(t)

	for _, doc := range []string{`[]`, `"Alice"`, `42`, `null`, `{broken`, ``} {
		t.Run(doc, func(t *testing.T) {
			err := s.Put(context.Background(), json.RawMessage(doc))
			assert.ErrorIs(t, err, domain.ErrInvalidProfile)
		})
	}

	exists, err := afero.Exists(fs, "data/profile.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProfileStore_GetCorruptDocument(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "data/profile.json", []byte("not json"), 0644))

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
