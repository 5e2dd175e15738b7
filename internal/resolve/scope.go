// Package resolve binds query table and column references to catalog
// entries. A Scope holds the tables a statement brings into view and
// answers qualified and unqualified column lookups.
package resolve

import (
	"strings"

	"github.com/Maharajan0604/CenQuery/internal/catalog"
)

// Entry is one table registered in a statement's scope. Table is nil
// when the referenced table does not exist in the catalog; the entry
// is still registered so references through its alias do not cascade
// into further diagnostics.
type Entry struct {
	Name  string // table name as written
	Alias string
	Table *catalog.Table
}

// EffectiveName is the name the entry is addressed by: the alias when
// present, the table name otherwise.
func (e *Entry) EffectiveName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Name
}

// Known reports whether the entry is backed by a catalog table.
func (e *Entry) Known() bool {
	return e.Table != nil
}

// Scope is the set of tables visible to a statement. Lookup keys are
// case-insensitive.
type Scope struct {
	entries map[string]*Entry
	order   []*Entry
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{entries: make(map[string]*Entry)}
}

// Register adds a table to the scope under its effective name. A
// repeated effective name shadows the earlier entry, matching the
// behavior of most SQL engines for self-joins without aliases.
func (s *Scope) Register(name, alias string, table *catalog.Table) *Entry {
	e := &Entry{Name: name, Alias: alias, Table: table}
	key := strings.ToLower(e.EffectiveName())
	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, e)
	} else {
		for i, old := range s.order {
			if strings.ToLower(old.EffectiveName()) == key {
				s.order[i] = e
				break
			}
		}
	}
	s.entries[key] = e
	return e
}

// Lookup finds the entry registered under the given table name or
// alias.
func (s *Scope) Lookup(name string) (*Entry, bool) {
	e, ok := s.entries[strings.ToLower(name)]
	return e, ok
}

// Entries returns the registered entries in registration order.
func (s *Scope) Entries() []*Entry {
	return s.order
}

// Names returns the effective names in registration order, the
// suggestion pool for an unknown qualifier.
func (s *Scope) Names() []string {
	names := make([]string, len(s.order))
	for i, e := range s.order {
		names[i] = e.EffectiveName()
	}
	return names
}

// Status classifies the outcome of a column lookup.
type Status int

const (
	// Resolved means the reference bound to exactly one column.
	Resolved Status = iota
	// UnknownColumn means no visible table has the column.
	UnknownColumn
	// UnknownQualifier means the reference's table qualifier is not
	// registered in the scope.
	UnknownQualifier
	// Ambiguous means an unqualified name matched several tables.
	Ambiguous
	// Suppressed means the lookup touched a table that failed to
	// resolve earlier; no further diagnostic should be emitted.
	Suppressed
)

// Resolution is the outcome of resolving one column reference.
type Resolution struct {
	Status Status
	Column catalog.Column
	Entry  *Entry

	// Matches holds every entry an ambiguous name resolved in.
	Matches []*Entry
	// Candidates is the suggestion pool for an unknown column: the
	// columns of the qualified table, or of every visible table.
	Candidates []string
}

// ResolveColumn binds a column reference. table is empty for bare
// column names.
func (s *Scope) ResolveColumn(table, column string) Resolution {
	if table != "" {
		entry, ok := s.Lookup(table)
		if !ok {
			return Resolution{Status: UnknownQualifier}
		}
		if !entry.Known() {
			return Resolution{Status: Suppressed, Entry: entry}
		}
		col, ok := entry.Table.Column(column)
		if !ok {
			return Resolution{Status: UnknownColumn, Entry: entry, Candidates: entry.Table.ColumnNames()}
		}
		return Resolution{Status: Resolved, Column: col, Entry: entry}
	}

	var (
		matches    []*Entry
		matched    catalog.Column
		unknowns   bool
		candidates []string
	)
	for _, e := range s.order {
		if !e.Known() {
			unknowns = true
			continue
		}
		candidates = append(candidates, e.Table.ColumnNames()...)
		if col, ok := e.Table.Column(column); ok {
			matches = append(matches, e)
			matched = col
		}
	}

	switch {
	case len(matches) == 1:
		return Resolution{Status: Resolved, Column: matched, Entry: matches[0]}
	case len(matches) > 1:
		return Resolution{Status: Ambiguous, Matches: matches}
	case unknowns:
		// The column might belong to the table that failed to
		// resolve, stay quiet instead of guessing.
		return Resolution{Status: Suppressed}
	default:
		return Resolution{Status: UnknownColumn, Candidates: candidates}
	}
}
