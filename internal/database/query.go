package database

import (
	"strings"
)

// QueryBuilder rewrites ? placeholders into the dialect's form.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build converts ? placeholders to dialect-specific placeholders. A ? inside a
// single-quoted literal is left alone.
//
//	input:    "SELECT * FROM runs WHERE template = ? AND seed = ?"
//	SQLite:   "SELECT * FROM runs WHERE template = ? AND seed = ?"
//	Postgres: "SELECT * FROM runs WHERE template = $1 AND seed = $2"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	quoted := false

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			result.WriteByte(c)
		case c == '?' && !quoted:
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		default:
			result.WriteByte(c)
		}
	}

	return result.String()
}

// BuildWithReturning appends a RETURNING clause if the dialect needs one to
// report the inserted id.
//
//	input:    "INSERT INTO attempts (run_id) VALUES (?)", "id"
//	SQLite:   "INSERT INTO attempts (run_id) VALUES (?)"
//	Postgres: "INSERT INTO attempts (run_id) VALUES ($1) RETURNING id"
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}
