package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moamenhredeen/oastester/internal/models"
)

func sampleResults() []models.TestResult {
	return []models.TestResult{
		{
			TestCase:   models.TestCase{Name: "List pets", Method: "GET", Endpoint: "/pets", ExpectedStatus: 200},
			Status:     200,
			OK:         true,
			Response:   []any{},
			DurationMS: 12,
		},
		{
			TestCase:   models.TestCase{Name: "Create pet", Method: "POST", Endpoint: "/pets", ExpectedStatus: 201},
			DurationMS: 3,
			Error:      "request failed: connection refused",
		},
	}
}

func TestDefaultExportName(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "api-test-results-2024-03-07.json", DefaultExportName(now))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResults()))

	assert.JSONEq(t, `[
		{"test": "List pets", "status": 200, "passed": true, "duration": "12ms"},
		{"test": "Create pet", "status": 0, "passed": false, "duration": "3ms", "error": "request failed: connection refused"}
	]`, buf.String())
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(12), decoded[0]["duration"])
	assert.Equal(t, "List pets", decoded[0]["testCase"].(map[string]any)["name"])
	assert.NotContains(t, decoded[0], "error")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "name", records[0][0])
	assert.Equal(t, []string{"List pets", "GET", "/pets", "200", "200", "true", "12", ""}, records[1])
	assert.Equal(t, "false", records[2][5])
}

func TestExportTestSummaryToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultExportName(time.Now()))
	summary := models.TestSummary{Results: sampleResults()}

	require.NoError(t, ExportTestSummary(summary, FormatSummary, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []SummaryEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 2)

	assert.Error(t, ExportTestSummary(summary, Format("xml"), path))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "csv", "summary"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
