package sql

// Expr is any expression node.
type Expr interface {
	exprNode()
}

// SelectStmt is a single SELECT statement. Set operations, CTEs and
// subqueries are outside the supported shape and never reach the AST.
type SelectStmt struct {
	Distinct bool
	Columns  []SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	Limit    Expr
	Offset   Expr
}

// SelectItem is one entry in the select list. Exactly one of Star,
// TableStar or Expr is set.
type SelectItem struct {
	Star      bool   // SELECT *
	TableStar string // SELECT t.* (table or alias name)
	Expr      Expr
	Alias     string
	Pos       Position
}

// FromClause is the base table plus any joins.
type FromClause struct {
	Source *TableName
	Joins  []*Join
}

// TableName is a table reference with an optional alias.
type TableName struct {
	Name  string
	Alias string
	Pos   Position
}

// EffectiveName is the name the table is addressed by in the query:
// the alias when present, the table name otherwise.
func (t *TableName) EffectiveName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// JoinType distinguishes the supported join flavors.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
)

func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL JOIN"
	default:
		return "JOIN"
	}
}

// Join is one joined table with its ON equality condition. The parser
// guarantees Condition is a column = column equality.
type Join struct {
	Type      JoinType
	Right     *TableName
	Condition *BinaryExpr
	Pos       Position
}

// OrderByItem is one ORDER BY key.
type OrderByItem struct {
	Expr Expr
	Desc bool
}

// ColumnRef is a possibly qualified column reference. Table is empty
// for bare column names.
type ColumnRef struct {
	Table  string
	Column string
	Pos    Position
}

func (c *ColumnRef) exprNode() {}

// String returns the reference as written, qualifier included.
func (c *ColumnRef) String() string {
	if c.Table != "" {
		return c.Table + "." + c.Column
	}
	return c.Column
}

// LiteralKind classifies literal values.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a constant value.
type Literal struct {
	Kind  LiteralKind
	Value string
	Pos   Position
}

func (l *Literal) exprNode() {}

// BinaryExpr is a binary operation. Op is the operator as written,
// lowercased for word operators (and, or, like).
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Pos   Position
}

func (b *BinaryExpr) exprNode() {}

// UnaryExpr is a prefix operation (NOT, unary minus).
type UnaryExpr struct {
	Op   string
	Expr Expr
	Pos  Position
}

func (u *UnaryExpr) exprNode() {}

// FuncCall is a function invocation. Star is set for COUNT(*).
type FuncCall struct {
	Name     string
	Distinct bool
	Star     bool
	Args     []Expr
	Pos      Position
}

func (f *FuncCall) exprNode() {}

// IsNullExpr is an IS [NOT] NULL test.
type IsNullExpr struct {
	Expr Expr
	Not  bool
	Pos  Position
}

func (i *IsNullExpr) exprNode() {}

// InExpr is an IN list over literal values.
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Pos    Position
}

func (i *InExpr) exprNode() {}

// BetweenExpr is a BETWEEN range test.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
	Pos  Position
}

func (b *BetweenExpr) exprNode() {}
