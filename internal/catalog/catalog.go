// Package catalog holds the declared schema that query references are
// resolved against. Lookups are case-insensitive and always exact,
// fuzzy matching belongs to the suggestion layer.
package catalog

import (
	"fmt"
	"strings"
)

// Type is a declared column type.
type Type string

const (
	TypeInteger Type = "integer"
	TypeReal    Type = "real"
	TypeText    Type = "text"
	TypeBoolean Type = "boolean"
	TypeDate    Type = "date"
	// TypeUnknown marks columns declared without a type. It is
	// compatible with everything.
	TypeUnknown Type = "unknown"
)

// typeAliases maps the spellings accepted in schema files and SQLite
// declarations onto canonical types.
var typeAliases = map[string]Type{
	"integer":   TypeInteger,
	"int":       TypeInteger,
	"bigint":    TypeInteger,
	"smallint":  TypeInteger,
	"real":      TypeReal,
	"float":     TypeReal,
	"double":    TypeReal,
	"numeric":   TypeReal,
	"decimal":   TypeReal,
	"text":      TypeText,
	"varchar":   TypeText,
	"char":      TypeText,
	"string":    TypeText,
	"boolean":   TypeBoolean,
	"bool":      TypeBoolean,
	"date":      TypeDate,
	"datetime":  TypeDate,
	"timestamp": TypeDate,
	"":          TypeUnknown,
	"unknown":   TypeUnknown,
}

// ParseType canonicalizes a declared type name.
func ParseType(s string) (Type, error) {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return TypeUnknown, fmt.Errorf("unrecognized column type %q", s)
}

// Compatible reports whether two column types may be compared.
// Integer and real are mutually compatible, unknown is compatible
// with everything, all other pairs must match exactly.
func Compatible(a, b Type) bool {
	if a == b || a == TypeUnknown || b == TypeUnknown {
		return true
	}
	return isNumeric(a) && isNumeric(b)
}

func isNumeric(t Type) bool {
	return t == TypeInteger || t == TypeReal
}

// Column is one declared column. Nullable defaults to false; schema
// files opt in per column and SQLite introspection derives it from
// the NOT NULL constraint.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

// Table is a declared table with its columns in declaration order.
type Table struct {
	Name    string
	Columns []Column

	byName map[string]int
}

// Column looks up a column by name, case-insensitively.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Catalog is the full declared schema.
type Catalog struct {
	tables []*Table
	byName map[string]int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{byName: make(map[string]int)}
}

// AddTable declares a table. Duplicate table or column names, compared
// case-insensitively, are schema errors.
func (c *Catalog) AddTable(name string, columns []Column) error {
	key := strings.ToLower(name)
	if _, exists := c.byName[key]; exists {
		return &SchemaError{Table: name, Message: "duplicate table"}
	}
	if len(columns) == 0 {
		return &SchemaError{Table: name, Message: "table has no columns"}
	}

	t := &Table{Name: name, Columns: columns, byName: make(map[string]int, len(columns))}
	for i, col := range columns {
		ck := strings.ToLower(col.Name)
		if _, dup := t.byName[ck]; dup {
			return &SchemaError{Table: name, Column: col.Name, Message: "duplicate column"}
		}
		t.byName[ck] = i
	}

	c.byName[key] = len(c.tables)
	c.tables = append(c.tables, t)
	return nil
}

// Table looks up a table by name, case-insensitively.
func (c *Catalog) Table(name string) (*Table, bool) {
	i, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return c.tables[i], true
}

// Tables returns all tables in declaration order.
func (c *Catalog) Tables() []*Table {
	return c.tables
}

// TableNames returns the table names in declaration order.
func (c *Catalog) TableNames() []string {
	names := make([]string, len(c.tables))
	for i, t := range c.tables {
		names[i] = t.Name
	}
	return names
}

// AllColumnNames returns the union of column names across every
// table, deduplicated case-insensitively, in declaration order.
func (c *Catalog) AllColumnNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range c.tables {
		for _, col := range t.Columns {
			key := strings.ToLower(col.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, col.Name)
		}
	}
	return names
}

// SchemaError is a catalog declaration problem. Loading is
// all-or-nothing, the first schema error aborts the load.
type SchemaError struct {
	Table   string
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema error in table %q, column %q: %s", e.Table, e.Column, e.Message)
	}
	if e.Table != "" {
		return fmt.Sprintf("schema error in table %q: %s", e.Table, e.Message)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}
