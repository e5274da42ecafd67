package composer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/moamenhredeen/oastester/internal/models"
)

// ParseTestCases accepts a JSON array of test cases or a single test case object.
// Invalid input returns an error wrapping models.ErrInvalidTestCases.
func ParseTestCases(data []byte) ([]models.TestCase, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", models.ErrInvalidTestCases)
	}

	switch trimmed[0] {
	case '[':
		var cases []models.TestCase
		if err := json.Unmarshal(trimmed, &cases); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidTestCases, err)
		}
		if cases == nil {
			cases = []models.TestCase{}
		}
		return cases, nil
	case '{':
		var tc models.TestCase
		if err := json.Unmarshal(trimmed, &tc); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidTestCases, err)
		}
		return []models.TestCase{tc}, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", models.ErrInvalidTestCases)
	}
}

// MarshalTestCases renders test cases as indented JSON for editing
func MarshalTestCases(cases []models.TestCase) ([]byte, error) {
	if cases == nil {
		cases = []models.TestCase{}
	}
	return json.MarshalIndent(cases, "", "  ")
}
