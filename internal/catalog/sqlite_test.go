package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("crop_stats").
			AddRow("population_stats"))

	mock.ExpectQuery(`SELECT name, type, "notnull" FROM pragma_table_info`).
		WithArgs("crop_stats").
		WillReturnRows(sqlmock.NewRows([]string{"name", "type", "notnull"}).
			AddRow("crop", "TEXT", 1).
			AddRow("area_sown_2025_26", "REAL", 0).
			AddRow("difference_area", "NUMERIC", 0))

	mock.ExpectQuery(`SELECT name, type, "notnull" FROM pragma_table_info`).
		WithArgs("population_stats").
		WillReturnRows(sqlmock.NewRows([]string{"name", "type", "notnull"}).
			AddRow("state", "VARCHAR", 1).
			AddRow("population", "INTEGER", 0).
			AddRow("geom", "GEOMETRY", 0))

	c, err := Introspect(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"crop_stats", "population_stats"}, c.TableNames())

	crops, ok := c.Table("crop_stats")
	require.True(t, ok)
	crop, _ := crops.Column("crop")
	assert.False(t, crop.Nullable, "NOT NULL column")
	col, _ := crops.Column("difference_area")
	assert.Equal(t, TypeReal, col.Type)
	assert.True(t, col.Nullable)

	pop, ok := c.Table("population_stats")
	require.True(t, ok)
	state, _ := pop.Column("state")
	assert.Equal(t, TypeText, state.Type)

	// Free-form declared types degrade to unknown instead of failing.
	geom, ok := pop.Column("geom")
	require.True(t, ok)
	assert.Equal(t, TypeUnknown, geom.Type)
}

func TestIntrospectEmptyDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err = Introspect(context.Background(), db)
	require.Error(t, err)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "no tables")
}
