package tester

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moamenhredeen/oastester/internal/models"
)

func TestCompareResponseSubset(t *testing.T) {
	expected := map[string]any{"id": float64(1), "name": "Fluffy"}
	actual := map[string]any{"id": float64(1), "name": "Fluffy", "tag": "cat"}

	assert.Empty(t, CompareResponse(expected, actual))
}

func TestCompareResponseDifferences(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     []models.ValidationError
	}{
		{
			name:     "missing field",
			expected: map[string]any{"id": float64(1)},
			actual:   map[string]any{},
			want:     []models.ValidationError{{Field: "body.id", Message: "missing field"}},
		},
		{
			name:     "value differs",
			expected: map[string]any{"name": "Fluffy"},
			actual:   map[string]any{"name": "Spot"},
			want:     []models.ValidationError{{Field: "body.name", Message: `expected "Fluffy", got "Spot"`}},
		},
		{
			name:     "array length",
			expected: []any{"a", "b"},
			actual:   []any{"a"},
			want:     []models.ValidationError{{Field: "body", Message: "expected 2 elements, got 1"}},
		},
		{
			name:     "nested array element",
			expected: map[string]any{"items": []any{map[string]any{"id": float64(2)}}},
			actual:   map[string]any{"items": []any{map[string]any{"id": float64(3)}}},
			want:     []models.ValidationError{{Field: "body.items[0].id", Message: "expected 2, got 3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareResponse(tt.expected, tt.actual))
		})
	}
}

func TestCompareResponseTypeMismatch(t *testing.T) {
	errs := CompareResponse(map[string]any{"id": float64(1)}, "plain text")
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "body", errs[0].Field)
	}
}
