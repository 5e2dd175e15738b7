package sql

import "strings"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TOKEN_ILLEGAL TokenType = iota
	TOKEN_EOF

	// Literals and identifiers.
	TOKEN_IDENT
	TOKEN_NUMBER
	TOKEN_STRING

	// Punctuation.
	TOKEN_COMMA
	TOKEN_DOT
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_SEMICOLON
	TOKEN_STAR

	// Operators.
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_EQ
	TOKEN_NEQ
	TOKEN_LT
	TOKEN_LTE
	TOKEN_GT
	TOKEN_GTE
	TOKEN_CONCAT

	// Keywords.
	TOKEN_SELECT
	TOKEN_DISTINCT
	TOKEN_ALL
	TOKEN_AS
	TOKEN_FROM
	TOKEN_JOIN
	TOKEN_INNER
	TOKEN_LEFT
	TOKEN_RIGHT
	TOKEN_FULL
	TOKEN_OUTER
	TOKEN_CROSS
	TOKEN_ON
	TOKEN_WHERE
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT
	TOKEN_GROUP
	TOKEN_BY
	TOKEN_HAVING
	TOKEN_ORDER
	TOKEN_ASC
	TOKEN_DESC
	TOKEN_LIMIT
	TOKEN_OFFSET
	TOKEN_NULL
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_IS
	TOKEN_IN
	TOKEN_BETWEEN
	TOKEN_LIKE
	TOKEN_CASE
	TOKEN_WITH
	TOKEN_UNION
	TOKEN_INTERSECT
	TOKEN_EXCEPT
	TOKEN_EXISTS
	TOKEN_OVER
)

var keywords = map[string]TokenType{
	"select":    TOKEN_SELECT,
	"distinct":  TOKEN_DISTINCT,
	"all":       TOKEN_ALL,
	"as":        TOKEN_AS,
	"from":      TOKEN_FROM,
	"join":      TOKEN_JOIN,
	"inner":     TOKEN_INNER,
	"left":      TOKEN_LEFT,
	"right":     TOKEN_RIGHT,
	"full":      TOKEN_FULL,
	"outer":     TOKEN_OUTER,
	"cross":     TOKEN_CROSS,
	"on":        TOKEN_ON,
	"where":     TOKEN_WHERE,
	"and":       TOKEN_AND,
	"or":        TOKEN_OR,
	"not":       TOKEN_NOT,
	"group":     TOKEN_GROUP,
	"by":        TOKEN_BY,
	"having":    TOKEN_HAVING,
	"order":     TOKEN_ORDER,
	"asc":       TOKEN_ASC,
	"desc":      TOKEN_DESC,
	"limit":     TOKEN_LIMIT,
	"offset":    TOKEN_OFFSET,
	"null":      TOKEN_NULL,
	"true":      TOKEN_TRUE,
	"false":     TOKEN_FALSE,
	"is":        TOKEN_IS,
	"in":        TOKEN_IN,
	"between":   TOKEN_BETWEEN,
	"like":      TOKEN_LIKE,
	"case":      TOKEN_CASE,
	"with":      TOKEN_WITH,
	"union":     TOKEN_UNION,
	"intersect": TOKEN_INTERSECT,
	"except":    TOKEN_EXCEPT,
	"exists":    TOKEN_EXISTS,
	"over":      TOKEN_OVER,
}

// LookupIdent returns the keyword token type for an identifier, or
// TOKEN_IDENT when the word is not a reserved keyword. Matching is
// case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TOKEN_IDENT
}

// Position is a location in the source text. Line and Column are
// 1-based, Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is a single lexical token with its source position. For quoted
// identifiers and strings, Literal holds the unquoted value.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
