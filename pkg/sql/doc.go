// Package sql lexes and parses the SELECT subset CenQuery validates:
// a single statement with optional equality joins, WHERE, GROUP BY,
// HAVING, ORDER BY and LIMIT. Constructs outside that shape (CTEs,
// set operations, subqueries, window functions, CASE) are rejected
// with a ParseError rather than silently accepted, so the validator
// never reasons about queries it only half-understands.
package sql
