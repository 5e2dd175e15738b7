package sql

import "fmt"

// ParseError is a syntax error, or a construct outside the supported
// query shape, at a known source position.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
