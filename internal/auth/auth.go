package auth

import (
	"maps"
	"strings"

	"github.com/moamenhredeen/oastester/internal/models"
)

// Header names set by ApplyAuth
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-API-Key"
)

// ApplyAuth returns a copy of headers with the credential of token applied.
// The credential replaces any header of the same name in another letter case.
// A nil token leaves the headers unchanged. Basic secrets are sent as stored;
// they are expected to be base64-encoded already.
func ApplyAuth(headers map[string]string, token *models.AuthToken) map[string]string {
	out := make(map[string]string, len(headers)+1)
	maps.Copy(out, headers)

	if token == nil {
		return out
	}

	kind, err := models.ParseTokenKind(string(token.Kind))
	if err != nil {
		return out
	}

	switch kind {
	case models.TokenBearer:
		SetHeader(out, HeaderAuthorization, "Bearer "+token.Secret)
	case models.TokenAPIKey:
		SetHeader(out, HeaderAPIKey, token.Secret)
	case models.TokenBasic:
		SetHeader(out, HeaderAuthorization, "Basic "+token.Secret)
	}
	return out
}

// SetHeader sets name in headers, dropping keys that differ from it only in case
func SetHeader(headers map[string]string, name, value string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}
	headers[name] = value
}
