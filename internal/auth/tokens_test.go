package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/store"
)

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestTokenStore() *TokenStore {
	return NewTokenStore(store.NewMemoryStore(), WithNow(fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))
}

func TestTokenStoreAddAndList(t *testing.T) {
	s := newTestTokenStore()

	first, err := s.Add("prod", "abc", models.TokenBearer, "production key")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := s.Add("staging", "k-1", models.TokenAPIKey, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	tokens, err := s.List()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "prod", tokens[0].Name)
	assert.Equal(t, "production key", tokens[0].Description)
	assert.Equal(t, models.TokenAPIKey, tokens[1].Kind)

	got, err := s.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, "k-1", got.Secret)
}

func TestTokenStoreAddRejectsBlankFields(t *testing.T) {
	s := newTestTokenStore()
	_, err := s.Add("existing", "secret", models.TokenBearer, "")
	require.NoError(t, err)

	tests := []struct {
		name, tokenName, secret string
	}{
		{"empty secret", "x", ""},
		{"whitespace secret", "x", "   "},
		{"empty name", "", "secret"},
		{"whitespace name", "\t", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(tt.tokenName, tt.secret, models.TokenBearer, "")
			assert.True(t, errors.Is(err, models.ErrMissingField))

			tokens, err := s.List()
			require.NoError(t, err)
			assert.Len(t, tokens, 1)
		})
	}
}

func TestTokenStoreAddRejectsUnknownKind(t *testing.T) {
	s := newTestTokenStore()
	_, err := s.Add("x", "secret", models.TokenKind("Digest"), "")
	assert.Error(t, err)

	tokens, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestTokenStoreAddNormalizesKind(t *testing.T) {
	s := newTestTokenStore()

	tok, err := s.Add("k", "xyz", models.TokenKind("ApiKey"), "")
	require.NoError(t, err)
	assert.Equal(t, models.TokenAPIKey, tok.Kind)

	stored, err := s.Get(tok.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TokenAPIKey, stored.Kind)
	assert.Equal(t, map[string]string{"X-API-Key": "xyz"}, ApplyAuth(map[string]string{}, &stored))
}

// brokenStore fails every read with an error other than not-found
type brokenStore struct {
	store.BlobStore
}

func (brokenStore) Get(kind, id string) ([]byte, error) {
	return nil, &store.OpError{Op: "store.get", Kind: kind, ID: id, Err: errors.New("permission denied")}
}

func TestTokenStoreAddFailsWhenStoreUnreadable(t *testing.T) {
	mem := store.NewMemoryStore()
	s := NewTokenStore(brokenStore{BlobStore: mem})

	_, err := s.Add("prod", "abc", models.TokenBearer, "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))

	ids, err := mem.List(store.KindToken)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTokenStoreIDsDoNotCollide(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTokenStore(store.NewMemoryStore(), WithNow(func() time.Time { return frozen }))

	a, err := s.Add("a", "1", models.TokenBearer, "")
	require.NoError(t, err)
	b, err := s.Add("b", "2", models.TokenBearer, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenStoreDelete(t *testing.T) {
	s := newTestTokenStore()
	tok, err := s.Add("prod", "abc", models.TokenBearer, "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(tok.ID))

	tokens, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, tokens)

	err = s.Delete(tok.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestTokenStoreSkipsCorruptEntries(t *testing.T) {
	blobs := store.NewMemoryStore()
	require.NoError(t, blobs.Put(store.KindToken, "broken", []byte("{")))

	s := NewTokenStore(blobs)
	_, err := s.Add("ok", "abc", models.TokenBasic, "")
	require.NoError(t, err)

	tokens, err := s.List()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "ok", tokens[0].Name)
}
