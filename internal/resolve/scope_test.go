package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maharajan0604/CenQuery/internal/catalog"
)

func censusCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.AddTable("crop_stats", []catalog.Column{
		{Name: "crop", Type: catalog.TypeText},
		{Name: "area_sown_2025_26", Type: catalog.TypeReal},
		{Name: "area_sown_2024_25", Type: catalog.TypeReal},
		{Name: "difference_area", Type: catalog.TypeReal},
	}))
	require.NoError(t, c.AddTable("population_stats", []catalog.Column{
		{Name: "state", Type: catalog.TypeText},
		{Name: "population", Type: catalog.TypeInteger},
	}))
	return c
}

func TestScopeLookup(t *testing.T) {
	cat := censusCatalog(t)
	crops, _ := cat.Table("crop_stats")

	s := NewScope()
	s.Register("crop_stats", "c", crops)

	entry, ok := s.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "c", entry.EffectiveName())
	assert.True(t, entry.Known())

	// The alias shadows the table name.
	_, ok = s.Lookup("crop_stats")
	assert.False(t, ok)

	// Without an alias the table name is the effective name.
	s2 := NewScope()
	s2.Register("crop_stats", "", crops)
	_, ok = s2.Lookup("CROP_STATS")
	assert.True(t, ok)
}

func TestResolveQualifiedColumn(t *testing.T) {
	cat := censusCatalog(t)
	crops, _ := cat.Table("crop_stats")

	s := NewScope()
	s.Register("crop_stats", "c", crops)

	res := s.ResolveColumn("c", "crop")
	assert.Equal(t, Resolved, res.Status)
	assert.Equal(t, catalog.TypeText, res.Column.Type)

	res = s.ResolveColumn("c", "state")
	assert.Equal(t, UnknownColumn, res.Status)
	assert.Equal(t, []string{"crop", "area_sown_2025_26", "area_sown_2024_25", "difference_area"}, res.Candidates)

	res = s.ResolveColumn("x", "crop")
	assert.Equal(t, UnknownQualifier, res.Status)
}

func TestResolveUnqualifiedColumn(t *testing.T) {
	cat := censusCatalog(t)
	crops, _ := cat.Table("crop_stats")
	pop, _ := cat.Table("population_stats")

	s := NewScope()
	s.Register("crop_stats", "c", crops)
	s.Register("population_stats", "p", pop)

	res := s.ResolveColumn("", "population")
	assert.Equal(t, Resolved, res.Status)
	assert.Equal(t, "p", res.Entry.EffectiveName())

	res = s.ResolveColumn("", "production")
	assert.Equal(t, UnknownColumn, res.Status)
	assert.Len(t, res.Candidates, 6)
}

func TestResolveAmbiguousColumn(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddTable("a", []catalog.Column{{Name: "id", Type: catalog.TypeInteger}}))
	require.NoError(t, cat.AddTable("b", []catalog.Column{{Name: "id", Type: catalog.TypeInteger}}))
	ta, _ := cat.Table("a")
	tb, _ := cat.Table("b")

	s := NewScope()
	s.Register("a", "", ta)
	s.Register("b", "", tb)

	res := s.ResolveColumn("", "id")
	assert.Equal(t, Ambiguous, res.Status)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "a", res.Matches[0].EffectiveName())
	assert.Equal(t, "b", res.Matches[1].EffectiveName())
}

func TestUnknownTableSuppressesColumnLookups(t *testing.T) {
	cat := censusCatalog(t)
	crops, _ := cat.Table("crop_stats")

	s := NewScope()
	s.Register("croop_stats", "cs", nil)
	s.Register("crop_stats", "c", crops)

	// Qualified through the failed table: suppressed.
	res := s.ResolveColumn("cs", "anything")
	assert.Equal(t, Suppressed, res.Status)

	// Unqualified, not found in any known table: might belong to the
	// failed one, so also suppressed.
	res = s.ResolveColumn("", "production")
	assert.Equal(t, Suppressed, res.Status)

	// But resolvable names still resolve.
	res = s.ResolveColumn("", "crop")
	assert.Equal(t, Resolved, res.Status)
}
