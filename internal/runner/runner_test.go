package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maharajan0604/CenQuery/internal/catalog"
	"github.com/Maharajan0604/CenQuery/internal/validate"
)

func censusValidator(t *testing.T) *validate.Validator {
	t.Helper()
	cat := catalog.New()
	require.NoError(t, cat.AddTable("crop_stats", []catalog.Column{
		{Name: "crop", Type: catalog.TypeText},
		{Name: "area_sown_2025_26", Type: catalog.TypeReal},
		{Name: "area_sown_2024_25", Type: catalog.TypeReal},
		{Name: "difference_area", Type: catalog.TypeReal},
	}))
	require.NoError(t, cat.AddTable("population_stats", []catalog.Column{
		{Name: "state", Type: catalog.TypeText},
		{Name: "population", Type: catalog.TypeInteger},
	}))
	return validate.New(cat)
}

func TestRunBatch(t *testing.T) {
	r := New(censusValidator(t), 4, nil)

	queries := []string{
		"SELECT c.crop FROM crop_stats c JOIN population_stats p ON c.state = p.state",
		"SELECT crop_name, production FROM crop_stats",
		"SELECT c.crop, c.area_sown_2025_26 FROM crop_stats c ORDER BY c.area_sown_2025_26 DESC",
	}

	rep, err := r.Run(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, rep.Results, 3)
	assert.NotEmpty(t, rep.RunID)
	assert.False(t, rep.AllPass())

	invalidJoin := rep.Results[0]
	assert.Equal(t, 1, invalidJoin.Index)
	assert.False(t, invalidJoin.Pass)
	require.Len(t, invalidJoin.Diagnostics, 1)
	assert.Equal(t, validate.KindInvalidJoin, invalidJoin.Diagnostics[0].Kind)
	assert.Empty(t, invalidJoin.Diagnostics[0].Suggestions)

	unknownCols := rep.Results[1]
	assert.Equal(t, 2, unknownCols.Index)
	require.Len(t, unknownCols.Diagnostics, 2)
	assert.Equal(t, validate.KindUnknownColumn, unknownCols.Diagnostics[0].Kind)
	assert.Equal(t, []string{"crop"}, unknownCols.Diagnostics[0].Suggestions)
	assert.Equal(t, validate.KindUnknownColumn, unknownCols.Diagnostics[1].Kind)

	clean := rep.Results[2]
	assert.Equal(t, 3, clean.Index)
	assert.True(t, clean.Pass)
	assert.Empty(t, clean.Diagnostics)

	passed, failed := rep.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 3, rep.DiagnosticCount())
}

func TestRunPreservesQueryOrder(t *testing.T) {
	r := New(censusValidator(t), 8, nil)

	var queries []string
	for i := 0; i < 100; i++ {
		queries = append(queries, fmt.Sprintf("SELECT crop FROM crop_stats LIMIT %d", i+1))
	}

	rep, err := r.Run(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, rep.Results, 100)
	for i, res := range rep.Results {
		assert.Equal(t, i+1, res.Index)
		assert.Equal(t, queries[i], res.Query)
	}
	assert.True(t, rep.AllPass())
}

func TestRunIsDeterministic(t *testing.T) {
	r := New(censusValidator(t), 4, nil)
	queries := []string{
		"SELECT crop_name FROM crop_stats",
		"SELECT nope FROM population_stats",
		"SELECT crop FROM croop_stats",
	}

	first, err := r.Run(context.Background(), queries)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Run(context.Background(), queries)
		require.NoError(t, err)
		assert.Equal(t, first.Results, again.Results)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	r := New(censusValidator(t), 2, nil)
	rep, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Results)
	assert.True(t, rep.AllPass())
}

func TestRunCanceledContext(t *testing.T) {
	r := New(censusValidator(t), 2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, []string{"SELECT crop FROM crop_stats"})
	assert.ErrorIs(t, err, context.Canceled)
}
