package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	v := censusValidator(t)

	t.Run("repaired query does not reproduce the diagnostic", func(t *testing.T) {
		query := "SELECT crop_name FROM crop_stats ORDER BY crop_name"
		diags := v.Validate(query)
		require.NotEmpty(t, diags)
		require.NotEmpty(t, diags[0].Suggestions)

		fixed, ok := Rewrite(query, diags[0])
		require.True(t, ok)
		assert.Equal(t, "SELECT crop FROM crop_stats ORDER BY crop", fixed)
		assert.Empty(t, v.Validate(fixed))
	})

	t.Run("table suggestion", func(t *testing.T) {
		query := "SELECT crop FROM croop_stats"
		diags := v.Validate(query)
		require.Len(t, diags, 1)

		fixed, ok := Rewrite(query, diags[0])
		require.True(t, ok)
		assert.Equal(t, "SELECT crop FROM crop_stats", fixed)
		assert.Empty(t, v.Validate(fixed))
	})

	t.Run("qualified token replaces only the column part", func(t *testing.T) {
		query := "SELECT c.crop_name FROM crop_stats c"
		diags := v.Validate(query)
		require.Len(t, diags, 1)
		assert.Equal(t, "c.crop_name", diags[0].Token)

		fixed, ok := Rewrite(query, diags[0])
		require.True(t, ok)
		assert.Equal(t, "SELECT c.crop FROM crop_stats c", fixed)
	})

	t.Run("no suggestions", func(t *testing.T) {
		query := "SELECT production FROM crop_stats"
		diags := v.Validate(query)
		require.Len(t, diags, 1)
		require.Empty(t, diags[0].Suggestions)

		_, ok := Rewrite(query, diags[0])
		assert.False(t, ok)
	})

	t.Run("partial identifier matches are left alone", func(t *testing.T) {
		d := Diagnostic{Kind: KindUnknownColumn, Token: "crop", Suggestions: []string{"state"}}
		fixed, ok := Rewrite("SELECT crop_name, crop FROM crop_stats", d)
		require.True(t, ok)
		assert.Equal(t, "SELECT crop_name, state FROM crop_stats", fixed)
	})
}
