package pager

import "fmt"

// SortableColumn binds the public sort key of a resource to the database
// column it orders by. The set of sortable columns is fixed per resource and
// is the only thing a caller-supplied sortBy is matched against.
type SortableColumn struct {
	// Name is the public key exposed to API callers, e.g. "createdAt".
	Name string
	// Column is the database column reference, e.g. "bugs.created_at".
	Column string
}

// _constantOrder keeps the query orderable even when a resource declares no
// sortable columns at all. "ORDER BY 1" sorts by the first selected column
// and is accepted by every dialect we target.
var _constantOrder = Orderings{{Column: "1", Direction: DirectionASC}}

// resolveSort matches the requested sort key against the whitelist. Matching
// is exact: an unknown key falls back to the first whitelist entry, and an
// empty whitelist falls back to a constant order expression. The returned
// name is what the result envelope echoes back; it is empty only for the
// constant-order fallback.
func resolveSort(sortable []SortableColumn, sortBy string, direction Direction) (Orderings, string) {
	if !direction.Valid() {
		direction = DirectionASC
	}

	for _, col := range sortable {
		if col.Name == sortBy {
			return Orderings{{Column: col.Column, Direction: direction}}, col.Name
		}
	}

	if len(sortable) > 0 {
		return Orderings{{Column: sortable[0].Column, Direction: direction}}, sortable[0].Name
	}

	return _constantOrder, ""
}

// ResolveSortStrict is the erroring variant of sort resolution for callers
// that prefer rejecting an unknown sort key over silently falling back. The
// error names the closest known key.
func ResolveSortStrict(sortable []SortableColumn, sortBy string, direction Direction) (OrderBy, error) {
	if !direction.Valid() {
		direction = DirectionASC
	}

	for _, col := range sortable {
		if col.Name == sortBy {
			return OrderBy{Column: col.Column, Direction: direction}, nil
		}
	}

	return OrderBy{}, fmt.Errorf("unknown sort key '%s'. closest: '%s'", sortBy, closestName(sortBy, sortableNames(sortable)))
}

// sortableNames lists the public keys of a whitelist, for error hints.
func sortableNames(sortable []SortableColumn) []string {
	names := make([]string, 0, len(sortable))
	for _, col := range sortable {
		names = append(names, col.Name)
	}

	return names
}
