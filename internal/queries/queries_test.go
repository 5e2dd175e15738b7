package queries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two statements",
			text: "SELECT crop FROM crop_stats;\nSELECT state FROM population_stats;",
			want: []string{"SELECT crop FROM crop_stats", "SELECT state FROM population_stats"},
		},
		{
			name: "no trailing semicolon",
			text: "SELECT 1",
			want: []string{"SELECT 1"},
		},
		{
			name: "semicolon inside string literal",
			text: "SELECT crop FROM crop_stats WHERE crop = 'a;b';SELECT 1",
			want: []string{"SELECT crop FROM crop_stats WHERE crop = 'a;b'", "SELECT 1"},
		},
		{
			name: "escaped quote inside string",
			text: "SELECT 'it''s; fine'; SELECT 2",
			want: []string{"SELECT 'it''s; fine'", "SELECT 2"},
		},
		{
			name: "semicolon inside line comment",
			text: "SELECT crop -- no; split here\nFROM crop_stats; SELECT 2",
			want: []string{"SELECT crop -- no; split here\nFROM crop_stats", "SELECT 2"},
		},
		{
			name: "semicolon inside block comment",
			text: "SELECT crop /* a;b */ FROM crop_stats",
			want: []string{"SELECT crop /* a;b */ FROM crop_stats"},
		},
		{
			name: "empty statements dropped",
			text: ";;SELECT 1;;\n;",
			want: []string{"SELECT 1"},
		},
		{
			name: "empty input",
			text: "  \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestLoadFileSQL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.sql")
	require.NoError(t, os.WriteFile(path, []byte(
		"SELECT crop FROM crop_stats;\nSELECT state FROM population_stats;\n"), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SELECT crop FROM crop_stats",
		"SELECT state FROM population_stats",
	}, got)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
queries:
  - SELECT crop FROM crop_stats
  - "SELECT state FROM population_stats; -- kept verbatim"
  - "  "
`), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SELECT crop FROM crop_stats",
		"SELECT state FROM population_stats; -- kept verbatim",
	}, got)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("queries: [}"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}
