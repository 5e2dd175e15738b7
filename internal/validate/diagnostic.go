// Package validate checks parsed queries against the catalog and
// turns every mismatch into a typed diagnostic.
package validate

// Kind classifies a diagnostic.
type Kind string

const (
	// KindParseError marks a query that failed to parse or used a
	// construct outside the supported shape.
	KindParseError Kind = "parse_error"
	// KindUnknownTable marks a table or alias reference that does not
	// exist.
	KindUnknownTable Kind = "unknown_table"
	// KindUnknownColumn marks a column reference no visible table
	// declares, including ambiguous unqualified references.
	KindUnknownColumn Kind = "unknown_column"
	// KindInvalidJoin marks a join condition referencing a column not
	// present in the joined tables.
	KindInvalidJoin Kind = "invalid_join"
	// KindTypeMismatch marks a comparison between columns with
	// incompatible declared types.
	KindTypeMismatch Kind = "type_mismatch"
)

// Clause names the query clause a diagnostic points into.
const (
	ClauseFrom    = "from"
	ClauseSelect  = "select"
	ClauseJoin    = "join"
	ClauseWhere   = "where"
	ClauseGroupBy = "group by"
	ClauseHaving  = "having"
	ClauseOrderBy = "order by"
	ClauseLimit   = "limit"
)

// Diagnostic is one validation finding. Token is the reference text
// as written in the query.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Clause  string `json:"clause,omitempty"`
	Token   string `json:"token,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`

	// Ambiguous is set on unknown_column diagnostics where the name
	// exists in more than one visible table.
	Ambiguous bool `json:"ambiguous,omitempty"`

	// Suggestions lists plausible repairs, best first.
	Suggestions []string `json:"suggestions,omitempty"`
}
