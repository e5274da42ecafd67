package models

import (
	"fmt"
	"strings"
	"time"
)

// TokenKind selects how a credential is bound to a request
type TokenKind string

const (
	TokenBearer TokenKind = "Bearer"
	TokenAPIKey TokenKind = "API Key"
	TokenBasic  TokenKind = "Basic"
)

// ParseTokenKind accepts the stored kind names plus a few spellings used on the command line
func ParseTokenKind(s string) (TokenKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bearer":
		return TokenBearer, nil
	case "api key", "apikey", "api-key", "api_key":
		return TokenAPIKey, nil
	case "basic":
		return TokenBasic, nil
	default:
		return "", fmt.Errorf("invalid token kind '%s': must be 'Bearer', 'API Key' or 'Basic'", s)
	}
}

// AuthToken is a stored credential. Only its ID is used to reference it from a run.
type AuthToken struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Secret      string    `json:"token"`
	Kind        TokenKind `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
