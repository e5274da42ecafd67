package output

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/tester"
)

// CurlCommand renders a shell command that repeats the request of tc
func CurlCommand(tc models.TestCase, baseURL string, token *models.AuthToken) string {
	args := []string{"curl", "-X", strings.ToUpper(tc.Method)}

	headers := tester.Headers(tc, token)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "-H", name+": "+headers[name])
	}

	if tc.HasBody() {
		if data, err := json.Marshal(tc.Body); err == nil {
			args = append(args, "-d", string(data))
		}
	}

	args = append(args, tester.URL(baseURL, tc))
	return shellescape.QuoteCommand(args)
}
