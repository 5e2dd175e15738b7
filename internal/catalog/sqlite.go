package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite introspects an SQLite database file and builds a catalog
// from its user tables.
func LoadSQLite(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	return Introspect(ctx, db)
}

// Introspect builds a catalog from an open SQLite connection. Internal
// sqlite_* tables are skipped. Declared column types are folded onto
// the catalog's type set, anything unrecognized becomes unknown.
func Introspect(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing tables: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	if len(tables) == 0 {
		return nil, &SchemaError{Message: "database contains no tables"}
	}

	c := New()
	for _, table := range tables {
		cols, err := tableColumns(ctx, db, table)
		if err != nil {
			return nil, err
		}
		if err := c.AddTable(table, cols); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, type, "notnull" FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("introspecting table %q: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var name, declType string
		var notNull int
		if err := rows.Scan(&name, &declType, &notNull); err != nil {
			return nil, fmt.Errorf("introspecting table %q: %w", table, err)
		}
		// SQLite declared types are free-form, unrecognized ones
		// degrade to unknown rather than failing the load.
		typ, err := ParseType(declType)
		if err != nil {
			typ = TypeUnknown
		}
		cols = append(cols, Column{Name: name, Type: typ, Nullable: notNull == 0})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspecting table %q: %w", table, err)
	}
	return cols, nil
}
