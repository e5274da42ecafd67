package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moamenhredeen/oastester/internal/models"
)

func TestApplyAuth(t *testing.T) {
	base := map[string]string{"Content-Type": "application/json"}

	tests := []struct {
		name  string
		token *models.AuthToken
		want  map[string]string
	}{
		{
			name:  "no token",
			token: nil,
			want:  map[string]string{"Content-Type": "application/json"},
		},
		{
			name:  "bearer",
			token: &models.AuthToken{Kind: models.TokenBearer, Secret: "abc"},
			want:  map[string]string{"Content-Type": "application/json", "Authorization": "Bearer abc"},
		},
		{
			name:  "api key",
			token: &models.AuthToken{Kind: models.TokenAPIKey, Secret: "k-1"},
			want:  map[string]string{"Content-Type": "application/json", "X-API-Key": "k-1"},
		},
		{
			name:  "api key stored with alias spelling",
			token: &models.AuthToken{Kind: models.TokenKind("ApiKey"), Secret: "k-2"},
			want:  map[string]string{"Content-Type": "application/json", "X-API-Key": "k-2"},
		},
		{
			name:  "unknown kind sends nothing",
			token: &models.AuthToken{Kind: models.TokenKind("Digest"), Secret: "x"},
			want:  map[string]string{"Content-Type": "application/json"},
		},
		{
			name:  "basic is sent as stored",
			token: &models.AuthToken{Kind: models.TokenBasic, Secret: "dXNlcjpwYXNz"},
			want:  map[string]string{"Content-Type": "application/json", "Authorization": "Basic dXNlcjpwYXNz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyAuth(base, tt.token))
		})
	}

	assert.Len(t, base, 1, "input headers must not be modified")
}

func TestApplyAuthOverridesExistingHeader(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer stale"}
	out := ApplyAuth(headers, &models.AuthToken{Kind: models.TokenBearer, Secret: "fresh"})

	assert.Equal(t, "Bearer fresh", out["Authorization"])
	assert.Equal(t, "Bearer stale", headers["Authorization"])
}

func TestApplyAuthNilHeaders(t *testing.T) {
	out := ApplyAuth(nil, nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyAuthReplacesHeaderInOtherCase(t *testing.T) {
	headers := map[string]string{"authorization": "Bearer user", "x-api-key": "old"}

	out := ApplyAuth(headers, &models.AuthToken{Kind: models.TokenBearer, Secret: "xyz"})
	assert.Equal(t, map[string]string{"Authorization": "Bearer xyz", "x-api-key": "old"}, out)

	out = ApplyAuth(headers, &models.AuthToken{Kind: models.TokenAPIKey, Secret: "new"})
	assert.Equal(t, map[string]string{"authorization": "Bearer user", "X-API-Key": "new"}, out)
}

func TestSetHeader(t *testing.T) {
	headers := map[string]string{"content-type": "text/plain", "CONTENT-TYPE": "text/html", "Accept": "*/*"}
	SetHeader(headers, "Content-Type", "application/json")
	assert.Equal(t, map[string]string{"Content-Type": "application/json", "Accept": "*/*"}, headers)
}
