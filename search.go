package pager

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// buildSearchPredicate builds the WHERE condition for a free-text search
// over the given columns.
//
// Simple mode casts every column to text and matches it case-insensitively
// against %query%, OR-ing the columns together. Full-text mode converts the
// columns into a tsvector document and matches it against the parsed query;
// with multiple columns each one is weighted by its position (first column
// weight 'A', second 'B', ...), so input order encodes relevance priority.
//
// Returns ErrNoSearchColumns when search was requested but the resource
// declared no searchable columns.
func buildSearchPredicate(columns []string, query string, simpleSearch bool) (clause.Expression, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("cannot build search predicate: %w", ErrNoSearchColumns)
	}

	for _, column := range columns {
		if err := validateColumnName(column); err != nil {
			return nil, fmt.Errorf("cannot build search predicate: %w", err)
		}
	}

	if simpleSearch {
		return simpleSearchExpression(columns, query), nil
	}

	return fullTextSearchExpression(columns, query), nil
}

// simpleSearchExpression matches every column, cast to text, against the
// query as a case-insensitive substring. Columns are OR-ed together.
func simpleSearchExpression(columns []string, query string) clause.Expression {
	pattern := "%" + query + "%"

	orExpressions := make([]clause.Expression, 0, len(columns))
	for _, column := range columns {
		orExpressions = append(orExpressions, clause.Expr{
			SQL:  fmt.Sprintf("CAST(%s AS TEXT) ILIKE ?", column),
			Vars: []any{pattern},
		})
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	}

	return clause.Or(orExpressions...)
}

// fullTextSearchExpression matches a tsvector document built from the
// columns against the parsed query. A single column is converted as-is;
// multiple columns are weighted by position and concatenated.
func fullTextSearchExpression(columns []string, query string) clause.Expression {
	if len(columns) == 1 {
		return clause.Expr{
			SQL:  fmt.Sprintf("to_tsvector('english', CAST(%s AS TEXT)) @@ plainto_tsquery('english', ?)", columns[0]),
			Vars: []any{query},
		}
	}

	weighted := make([]string, 0, len(columns))
	for i, column := range columns {
		weighted = append(weighted, fmt.Sprintf(
			"setweight(to_tsvector('english', COALESCE(CAST(%s AS TEXT), '')), '%c')",
			column, searchWeight(i),
		))
	}

	return clause.Expr{
		SQL:  fmt.Sprintf("(%s) @@ plainto_tsquery('english', ?)", strings.Join(weighted, " || ")),
		Vars: []any{query},
	}
}

// searchWeight maps a column position to a tsvector weight label. Postgres
// only knows weights A through D, so columns past the fourth share 'D'.
func searchWeight(position int) rune {
	if position > 3 {
		position = 3
	}

	return rune('A' + position)
}
