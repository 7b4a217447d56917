package pager

// Options carries the caller-supplied pagination, sorting and search
// parameters of an offset-paginated request. Raw values are never trusted
// directly: page and limit are normalized before use, the sort key is
// resolved against the whitelist, and search columns pass the column-name
// guard.
type Options struct {
	// Page number to request, 1-based. Values < 1 are clamped to 1.
	Page int `json:"page"`
	// Limit is the number of elements per page. Non-positive values fall
	// back to DefaultLimit; values above MaxLimit are clamped.
	Limit int `json:"limit"`
	// SortBy is the public name of the column to sort by. Unknown names
	// fall back to the first whitelist entry.
	SortBy string `json:"sortBy,omitempty"`
	// SortDirection is "asc" or "desc"; anything else sorts ascending.
	SortDirection Direction `json:"sortDirection,omitempty"`
	// Query is an optional free-text search string.
	Query string `json:"query,omitempty"`
	// SimpleSearch selects case-insensitive substring matching instead of
	// weighted full-text search.
	SimpleSearch bool `json:"simpleSearch,omitempty"`
	// SearchColumns are the columns Query is matched against, in relevance
	// order (first column weighted highest in full-text mode).
	SearchColumns []string `json:"-"`
}

// PaginationResult is the envelope of one offset-paginated page.
//
// The envelope is constructed once per call and never mutated or retained
// by this package afterwards; treat it as read-only.
type PaginationResult[T any] struct {
	Data        []T       `json:"data"`
	Total       int64     `json:"total"`
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
	HasNextPage bool      `json:"hasNextPage"`
	HasPrevPage bool      `json:"hasPrevPage"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	Pages       []PageRef `json:"pages"`
	// SortBy echoes the whitelist name actually used for ordering, which
	// is not necessarily the requested one.
	SortBy        string    `json:"sortBy,omitempty"`
	SortDirection Direction `json:"sortDirection,omitempty"`
}

// PageDirection selects the traversal direction of cursor pagination.
type PageDirection string

const (
	PageForward  PageDirection = "forward"
	PageBackward PageDirection = "backward"
)

// CursorInput carries the caller-supplied parameters of a cursor-paginated
// request. An empty Cursor requests the first page.
type CursorInput struct {
	Cursor    string        `json:"cursor,omitempty"`
	Limit     int           `json:"limit"`
	Direction PageDirection `json:"direction"`
}

// CursorPaginationResult is the envelope of one cursor-paginated page.
// NextCursor is non-nil only when the lookahead row proved more data
// exists; PrevCursor echoes the input cursor as-is.
type CursorPaginationResult[T any] struct {
	Data        []T     `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	PrevCursor  *string `json:"prevCursor"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}
