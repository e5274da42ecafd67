package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/moamenhredeen/oastester/internal/auth"
	"github.com/moamenhredeen/oastester/internal/models"
)

// Headers returns the headers sent for tc: the JSON content type, then the test case
// headers, then the credential, each overriding the previous. Names are compared
// case-insensitively, so at most one spelling of each header survives.
func Headers(tc models.TestCase, token *models.AuthToken) map[string]string {
	headers := map[string]string{"Content-Type": "application/json"}

	names := slices.Sorted(maps.Keys(tc.Headers))
	for _, name := range names {
		auth.SetHeader(headers, name, tc.Headers[name])
	}
	return auth.ApplyAuth(headers, token)
}

// URL joins base URL and endpoint by plain concatenation
func URL(baseURL string, tc models.TestCase) string {
	return baseURL + tc.Endpoint
}

// newRequest builds the HTTP request for a test case
func newRequest(ctx context.Context, tc models.TestCase, baseURL string, token *models.AuthToken) (*http.Request, error) {
	var body io.Reader
	if tc.HasBody() {
		data, err := json.Marshal(tc.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	method := strings.ToUpper(tc.Method)
	req, err := http.NewRequestWithContext(ctx, method, URL(baseURL, tc), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range Headers(tc, token) {
		req.Header.Set(k, v)
	}
	return req, nil
}
