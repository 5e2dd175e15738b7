package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const censusSchema = `
tables:
  - name: crop_stats
    columns:
      - name: crop
        type: text
      - name: area_sown_2025_26
        type: real
      - name: area_sown_2024_25
        type: real
      - name: difference_area
        type: real
  - name: population_stats
    columns:
      - name: state
        type: text
      - name: population
        type: integer
        nullable: true
`

func TestLoad(t *testing.T) {
	c, err := Load([]byte(censusSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{"crop_stats", "population_stats"}, c.TableNames())

	crops, ok := c.Table("crop_stats")
	require.True(t, ok)
	assert.Equal(t, []string{"crop", "area_sown_2025_26", "area_sown_2024_25", "difference_area"}, crops.ColumnNames())

	col, ok := crops.Column("area_sown_2025_26")
	require.True(t, ok)
	assert.Equal(t, TypeReal, col.Type)
	assert.False(t, col.Nullable, "nullable defaults to false")

	pop, ok := c.Table("population_stats")
	require.True(t, ok)
	population, ok := pop.Column("population")
	require.True(t, ok)
	assert.True(t, population.Nullable)

	_, ok = crops.Column("production")
	assert.False(t, ok)
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	c, err := Load([]byte(censusSchema))
	require.NoError(t, err)

	tbl, ok := c.Table("CROP_STATS")
	require.True(t, ok)
	assert.Equal(t, "crop_stats", tbl.Name)

	col, ok := tbl.Column("CROP")
	require.True(t, ok)
	assert.Equal(t, "crop", col.Name)
}

func TestLoadUntypedColumn(t *testing.T) {
	c, err := Load([]byte(`
tables:
  - name: regions
    columns:
      - name: id
        type: integer
      - name: notes
`))
	require.NoError(t, err)

	tbl, _ := c.Table("regions")
	col, ok := tbl.Column("notes")
	require.True(t, ok)
	assert.Equal(t, TypeUnknown, col.Type)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		wantMsg string
	}{
		{
			name:    "not yaml",
			schema:  "tables: [}",
			wantMsg: "invalid YAML",
		},
		{
			name:    "empty schema",
			schema:  "tables: []",
			wantMsg: "no tables",
		},
		{
			name: "duplicate table",
			schema: `
tables:
  - name: regions
    columns: [{name: id, type: integer}]
  - name: Regions
    columns: [{name: id, type: integer}]
`,
			wantMsg: "duplicate table",
		},
		{
			name: "duplicate column",
			schema: `
tables:
  - name: regions
    columns: [{name: id, type: integer}, {name: ID, type: text}]
`,
			wantMsg: "duplicate column",
		},
		{
			name: "bad type",
			schema: `
tables:
  - name: regions
    columns: [{name: id, type: blob8}]
`,
			wantMsg: "unrecognized column type",
		},
		{
			name: "table without columns",
			schema: `
tables:
  - name: regions
    columns: []
`,
			wantMsg: "no columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.schema))
			require.Error(t, err)
			var serr *SchemaError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Error(), tt.wantMsg)
		})
	}
}

func TestParseTypeAliases(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"INTEGER", TypeInteger},
		{"bigint", TypeInteger},
		{"varchar", TypeText},
		{"double", TypeReal},
		{"TIMESTAMP", TypeDate},
		{"bool", TypeBoolean},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		require.NoError(t, err, "ParseType(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseType(%q)", tt.in)
	}

	_, err := ParseType("geometry")
	assert.Error(t, err)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b Type
		want bool
	}{
		{TypeInteger, TypeInteger, true},
		{TypeInteger, TypeReal, true},
		{TypeReal, TypeInteger, true},
		{TypeText, TypeText, true},
		{TypeText, TypeDate, false},
		{TypeText, TypeInteger, false},
		{TypeBoolean, TypeInteger, false},
		{TypeUnknown, TypeDate, true},
		{TypeText, TypeUnknown, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compatible(tt.a, tt.b), "Compatible(%s, %s)", tt.a, tt.b)
	}
}

func TestAllColumnNames(t *testing.T) {
	c := New()
	require.NoError(t, c.AddTable("crop_stats", []Column{{Name: "crop"}, {Name: "state"}}))
	require.NoError(t, c.AddTable("population_stats", []Column{{Name: "state"}, {Name: "population"}}))

	assert.Equal(t, []string{"crop", "state", "population"}, c.AllColumnNames())
}
