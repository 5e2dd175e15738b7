package validate

import (
	"fmt"
	"strings"

	"github.com/Maharajan0604/CenQuery/internal/catalog"
	"github.com/Maharajan0604/CenQuery/internal/resolve"
	"github.com/Maharajan0604/CenQuery/internal/suggest"
	"github.com/Maharajan0604/CenQuery/pkg/sql"
)

// Diagnostic message formats.
const (
	errUnknownTable    = "unknown table %q"
	errUnknownAlias    = "unknown table or alias %q"
	errUnknownColumn   = "unknown column %q"
	errAmbiguousColumn = "ambiguous column reference %q"
	errInvalidJoinRef  = "join condition references unknown column %q"
	errTypeMismatch    = "comparison of incompatible types: %s is %s, %s is %s"
)

// Validator checks queries against one catalog. It is stateless across
// queries and safe for concurrent use.
type Validator struct {
	cat *catalog.Catalog
}

// New creates a validator over the given catalog.
func New(cat *catalog.Catalog) *Validator {
	return &Validator{cat: cat}
}

// Validate parses and resolves one query. An empty result means the
// query passed. Diagnostics come out in clause order: FROM tables
// first, then SELECT, JOIN, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT.
func (v *Validator) Validate(query string) []Diagnostic {
	stmt, err := sql.Parse(query)
	if err != nil {
		perr := err.(*sql.ParseError)
		return []Diagnostic{{
			Kind:    KindParseError,
			Line:    perr.Pos.Line,
			Column:  perr.Pos.Column,
			Message: perr.Message,
		}}
	}

	r := &run{
		cat:     v.cat,
		scope:   resolve.NewScope(),
		aliases: make(map[string]catalog.Type),
	}
	r.validateStmt(stmt)
	return r.diags
}

// run is the per-query validation state.
type run struct {
	cat   *catalog.Catalog
	scope *resolve.Scope
	// aliases holds select list aliases, keyed lowercase. They are
	// visible to bare references in GROUP BY, HAVING and ORDER BY.
	aliases map[string]catalog.Type
	diags   []Diagnostic
}

func (r *run) emit(d Diagnostic) {
	r.diags = append(r.diags, d)
}

func (r *run) validateStmt(stmt *sql.SelectStmt) {
	if stmt.From != nil {
		r.registerTable(stmt.From.Source, ClauseFrom)
		for _, join := range stmt.From.Joins {
			r.registerTable(join.Right, ClauseJoin)
		}
	}

	for _, item := range stmt.Columns {
		r.checkSelectItem(item)
	}

	if stmt.From != nil {
		for _, join := range stmt.From.Joins {
			r.checkJoinCondition(join)
		}
	}

	if stmt.Where != nil {
		r.walkExpr(ClauseWhere, stmt.Where)
	}
	for _, expr := range stmt.GroupBy {
		r.walkExpr(ClauseGroupBy, expr)
	}
	if stmt.Having != nil {
		r.walkExpr(ClauseHaving, stmt.Having)
	}
	for _, item := range stmt.OrderBy {
		r.walkExpr(ClauseOrderBy, item.Expr)
	}
	if stmt.Limit != nil {
		r.walkExpr(ClauseLimit, stmt.Limit)
	}
	if stmt.Offset != nil {
		r.walkExpr(ClauseLimit, stmt.Offset)
	}
}

// registerTable binds a FROM or JOIN table against the catalog. An
// unknown table is reported once here and still registered so that
// references through its alias stay quiet.
func (r *run) registerTable(t *sql.TableName, clause string) {
	table, ok := r.cat.Table(t.Name)
	if !ok {
		r.emit(Diagnostic{
			Kind:        KindUnknownTable,
			Clause:      clause,
			Token:       t.Name,
			Line:        t.Pos.Line,
			Column:      t.Pos.Column,
			Message:     fmt.Sprintf(errUnknownTable, t.Name),
			Suggestions: suggest.Suggest(t.Name, r.cat.TableNames()),
		})
		r.scope.Register(t.Name, t.Alias, nil)
		return
	}
	r.scope.Register(t.Name, t.Alias, table)
}

func (r *run) checkSelectItem(item sql.SelectItem) {
	if item.Star {
		return
	}
	if item.TableStar != "" {
		if _, ok := r.scope.Lookup(item.TableStar); !ok {
			r.emit(Diagnostic{
				Kind:        KindUnknownTable,
				Clause:      ClauseSelect,
				Token:       item.TableStar,
				Line:        item.Pos.Line,
				Column:      item.Pos.Column,
				Message:     fmt.Sprintf(errUnknownAlias, item.TableStar),
				Suggestions: suggest.Suggest(item.TableStar, r.scope.Names()),
			})
		}
		return
	}
	typ, _ := r.walkExpr(ClauseSelect, item.Expr)
	if item.Alias != "" {
		r.aliases[strings.ToLower(item.Alias)] = typ
	}
}

// aliasVisible reports whether bare references in the clause may name
// a select list alias.
func aliasVisible(clause string) bool {
	return clause == ClauseGroupBy || clause == ClauseHaving || clause == ClauseOrderBy
}

// checkJoinCondition validates both sides of an ON equality. A side
// that fails to resolve is an invalid join, not an unknown column, and
// carries no repair suggestions: the fix is choosing a different join
// key, not respelling this one.
func (r *run) checkJoinCondition(join *sql.Join) {
	left, leftOK := r.resolveJoinSide(join.Condition.Left.(*sql.ColumnRef))
	right, rightOK := r.resolveJoinSide(join.Condition.Right.(*sql.ColumnRef))

	if leftOK && rightOK && !catalog.Compatible(left.Type, right.Type) {
		lref := join.Condition.Left.(*sql.ColumnRef)
		rref := join.Condition.Right.(*sql.ColumnRef)
		r.emit(Diagnostic{
			Kind:    KindTypeMismatch,
			Clause:  ClauseJoin,
			Token:   lref.String(),
			Line:    join.Condition.Pos.Line,
			Column:  join.Condition.Pos.Column,
			Message: fmt.Sprintf(errTypeMismatch, lref.String(), left.Type, rref.String(), right.Type),
		})
	}
}

func (r *run) resolveJoinSide(ref *sql.ColumnRef) (catalog.Column, bool) {
	res := r.scope.ResolveColumn(ref.Table, ref.Column)
	switch res.Status {
	case resolve.Resolved:
		return res.Column, true
	case resolve.Suppressed:
		return catalog.Column{}, false
	}
	r.emit(Diagnostic{
		Kind:    KindInvalidJoin,
		Clause:  ClauseJoin,
		Token:   ref.String(),
		Line:    ref.Pos.Line,
		Column:  ref.Pos.Column,
		Message: fmt.Sprintf(errInvalidJoinRef, ref.String()),
	})
	return catalog.Column{}, false
}

// comparisonOps are the operators whose operand types must be
// mutually compatible.
var comparisonOps = map[string]bool{
	"=": true, "!=": true, "<>": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

// walkExpr resolves every column reference under e, emitting
// diagnostics as it goes. It returns the expression's declared type
// when one is known, so comparisons can be type-checked.
func (r *run) walkExpr(clause string, e sql.Expr) (catalog.Type, bool) {
	switch t := e.(type) {
	case *sql.ColumnRef:
		return r.resolveRef(clause, t)

	case *sql.Literal:
		switch t.Kind {
		case sql.LiteralNumber:
			return numberType(t.Value), true
		case sql.LiteralBool:
			return catalog.TypeBoolean, true
		}
		// String literals compare against text and date columns
		// alike, null against anything.
		return catalog.TypeUnknown, false

	case *sql.BinaryExpr:
		lt, lok := r.walkExpr(clause, t.Left)
		rt, rok := r.walkExpr(clause, t.Right)
		if comparisonOps[t.Op] && lok && rok && !catalog.Compatible(lt, rt) {
			r.emit(Diagnostic{
				Kind:    KindTypeMismatch,
				Clause:  clause,
				Token:   exprText(t.Left),
				Line:    t.Pos.Line,
				Column:  t.Pos.Column,
				Message: fmt.Sprintf(errTypeMismatch, exprText(t.Left), lt, exprText(t.Right), rt),
			})
		}
		return catalog.TypeUnknown, false

	case *sql.UnaryExpr:
		r.walkExpr(clause, t.Expr)
		return catalog.TypeUnknown, false

	case *sql.FuncCall:
		for _, arg := range t.Args {
			r.walkExpr(clause, arg)
		}
		return catalog.TypeUnknown, false

	case *sql.IsNullExpr:
		r.walkExpr(clause, t.Expr)
		return catalog.TypeBoolean, false

	case *sql.InExpr:
		et, eok := r.walkExpr(clause, t.Expr)
		for _, val := range t.Values {
			vt, vok := r.walkExpr(clause, val)
			if eok && vok && !catalog.Compatible(et, vt) {
				r.emit(Diagnostic{
					Kind:    KindTypeMismatch,
					Clause:  clause,
					Token:   exprText(t.Expr),
					Line:    t.Pos.Line,
					Column:  t.Pos.Column,
					Message: fmt.Sprintf(errTypeMismatch, exprText(t.Expr), et, exprText(val), vt),
				})
			}
		}
		return catalog.TypeBoolean, false

	case *sql.BetweenExpr:
		et, eok := r.walkExpr(clause, t.Expr)
		for _, bound := range []sql.Expr{t.Low, t.High} {
			bt, bok := r.walkExpr(clause, bound)
			if eok && bok && !catalog.Compatible(et, bt) {
				r.emit(Diagnostic{
					Kind:    KindTypeMismatch,
					Clause:  clause,
					Token:   exprText(t.Expr),
					Line:    t.Pos.Line,
					Column:  t.Pos.Column,
					Message: fmt.Sprintf(errTypeMismatch, exprText(t.Expr), et, exprText(bound), bt),
				})
			}
		}
		return catalog.TypeBoolean, false
	}
	return catalog.TypeUnknown, false
}

func (r *run) resolveRef(clause string, ref *sql.ColumnRef) (catalog.Type, bool) {
	res := r.scope.ResolveColumn(ref.Table, ref.Column)
	switch res.Status {
	case resolve.Resolved:
		return res.Column.Type, true

	case resolve.Suppressed:
		return catalog.TypeUnknown, false
	}

	// An unresolved bare name in GROUP BY, HAVING or ORDER BY may
	// refer to a select list alias rather than a source column.
	if ref.Table == "" && aliasVisible(clause) {
		if typ, ok := r.aliases[strings.ToLower(ref.Column)]; ok {
			return typ, typ != catalog.TypeUnknown
		}
	}

	switch res.Status {
	case resolve.UnknownQualifier:
		r.emit(Diagnostic{
			Kind:        KindUnknownTable,
			Clause:      clause,
			Token:       ref.Table,
			Line:        ref.Pos.Line,
			Column:      ref.Pos.Column,
			Message:     fmt.Sprintf(errUnknownAlias, ref.Table),
			Suggestions: suggest.Suggest(ref.Table, r.scope.Names()),
		})

	case resolve.Ambiguous:
		qualified := make([]string, len(res.Matches))
		for i, m := range res.Matches {
			qualified[i] = m.EffectiveName() + "." + ref.Column
		}
		r.emit(Diagnostic{
			Kind:        KindUnknownColumn,
			Clause:      clause,
			Token:       ref.Column,
			Line:        ref.Pos.Line,
			Column:      ref.Pos.Column,
			Message:     fmt.Sprintf(errAmbiguousColumn, ref.Column),
			Ambiguous:   true,
			Suggestions: qualified,
		})

	case resolve.UnknownColumn:
		r.emit(Diagnostic{
			Kind:        KindUnknownColumn,
			Clause:      clause,
			Token:       ref.String(),
			Line:        ref.Pos.Line,
			Column:      ref.Pos.Column,
			Message:     fmt.Sprintf(errUnknownColumn, ref.Column),
			Suggestions: suggest.Suggest(ref.Column, res.Candidates),
		})
	}
	return catalog.TypeUnknown, false
}

func numberType(value string) catalog.Type {
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '.', 'e', 'E':
			return catalog.TypeReal
		}
	}
	return catalog.TypeInteger
}

func exprText(e sql.Expr) string {
	switch t := e.(type) {
	case *sql.ColumnRef:
		return t.String()
	case *sql.Literal:
		return t.Value
	}
	return "expression"
}
