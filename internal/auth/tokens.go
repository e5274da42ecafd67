package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/store"
)

// TokenStore manages stored credentials on top of a blob store
type TokenStore struct {
	blobs store.BlobStore
	now   func() time.Time
}

type Option func(*TokenStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *TokenStore) { s.now = now }
}

// NewTokenStore creates a token store backed by blobs
func NewTokenStore(blobs store.BlobStore, opts ...Option) *TokenStore {
	s := &TokenStore{blobs: blobs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all tokens ordered by creation time
func (s *TokenStore) List() ([]models.AuthToken, error) {
	ids, err := s.blobs.List(store.KindToken)
	if err != nil {
		return nil, err
	}

	tokens := make([]models.AuthToken, 0, len(ids))
	for _, id := range ids {
		tok, err := s.Get(id)
		if err != nil {
			// Skip unreadable entries rather than hiding every other token
			logger.L().Warn("tokens.unreadable", "id", id, "error", err)
			continue
		}
		tokens = append(tokens, tok)
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].CreatedAt.Before(tokens[j].CreatedAt)
	})
	return tokens, nil
}

// Get returns the token with the given id
func (s *TokenStore) Get(id string) (models.AuthToken, error) {
	data, err := s.blobs.Get(store.KindToken, id)
	if err != nil {
		return models.AuthToken{}, err
	}

	var tok models.AuthToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return models.AuthToken{}, fmt.Errorf("failed to decode token %s: %w", id, err)
	}
	return tok, nil
}

// Add stores a new token. Name and secret must be non-blank; on failure nothing is stored.
func (s *TokenStore) Add(name, secret string, kind models.TokenKind, description string) (models.AuthToken, error) {
	if strings.TrimSpace(name) == "" {
		return models.AuthToken{}, fmt.Errorf("%w: name", models.ErrMissingField)
	}
	if strings.TrimSpace(secret) == "" {
		return models.AuthToken{}, fmt.Errorf("%w: secret", models.ErrMissingField)
	}
	kind, err := models.ParseTokenKind(string(kind))
	if err != nil {
		return models.AuthToken{}, err
	}

	now := s.now()
	id, err := s.newID(now)
	if err != nil {
		return models.AuthToken{}, err
	}

	tok := models.AuthToken{
		ID:          id,
		Name:        name,
		Secret:      secret,
		Kind:        kind,
		Description: description,
		CreatedAt:   now.UTC(),
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.blobs.Put(store.KindToken, tok.ID, data); err != nil {
		return models.AuthToken{}, err
	}

	logger.L().Debug("tokens.added", "id", tok.ID, "kind", tok.Kind)
	return tok, nil
}

// Delete removes the token with the given id
func (s *TokenStore) Delete(id string) error {
	if err := s.blobs.Delete(store.KindToken, id); err != nil {
		return err
	}
	logger.L().Debug("tokens.deleted", "id", id)
	return nil
}

// newID derives the id from the creation time in milliseconds, bumping it on collision
func (s *TokenStore) newID(now time.Time) (string, error) {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		_, err := s.blobs.Get(store.KindToken, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return id, nil
		case err != nil:
			return "", fmt.Errorf("failed to allocate token id: %w", err)
		}
		ms++
	}
}
