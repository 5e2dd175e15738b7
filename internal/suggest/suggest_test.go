package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"crop", "crop", 0},
		{"crop", "", 4},
		{"", "state", 5},
		{"crop", "crops", 1},
		{"state", "sttae", 2},
		{"population", "popluation", 2},
		{"crop_name", "crop", 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.s1, tt.s2), "levenshtein(%q, %q)", tt.s1, tt.s2)
	}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 1, Threshold("id"))
	assert.Equal(t, 3, Threshold("state"))
	assert.Equal(t, 4, Threshold("population"))
	assert.Equal(t, 4, Threshold("area_sown_2025_26"))
}

func TestSuggest(t *testing.T) {
	cropStats := []string{"crop", "area_sown_2025_26", "area_sown_2024_25", "difference_area"}

	tests := []struct {
		name       string
		input      string
		candidates []string
		want       []string
	}{
		{
			name:       "single character typo",
			input:      "stat",
			candidates: []string{"state", "population"},
			want:       []string{"state"},
		},
		{
			name:       "truncated name matches full column",
			input:      "crop_name",
			candidates: cropStats,
			want:       []string{"crop"},
		},
		{
			name:       "nothing close enough",
			input:      "state",
			candidates: cropStats,
			want:       nil,
		},
		{
			name:       "unrelated name",
			input:      "production",
			candidates: cropStats,
			want:       nil,
		},
		{
			name:       "ordered by distance then lexical",
			input:      "poplation",
			candidates: []string{"population", "populations"},
			want:       []string{"population", "populations"},
		},
		{
			name:       "case insensitive",
			input:      "CROPS",
			candidates: []string{"crop"},
			want:       []string{"crop"},
		},
		{
			name:       "exact match excluded",
			input:      "crop",
			candidates: []string{"crop", "crops"},
			want:       []string{"crops"},
		},
		{
			name:       "short fragments do not truncation-match",
			input:      "ar",
			candidates: []string{"area_sown_2025_26"},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.input, tt.candidates))
		})
	}
}
