package pager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CursorValue extracts the cursor-column value from a fetched row. The
// mapping from the column's storage name to the row's field is explicit and
// lives at the call site, instead of being guessed from naming conventions
// per call:
//
//	pager.PaginateWithCursor[Bug](ctx, base, "created_at",
//		func(b Bug) any { return b.CreatedAt }, input)
type CursorValue[T any] func(row T) any

// PaginateWithCursor runs keyset pagination over a composable base query.
//
// When a cursor is present it is decoded and applied as a strict comparison
// against cursorColumn: greater-than for forward traversal, less-than for
// backward. The query is ordered by cursorColumn in the matching direction
// and fetches one lookahead row past the limit; the presence of that row is
// the only thing that proves a next page exists.
//
// The cursor column is assumed to be effectively unique across rows.
// Duplicate values can skip or repeat a row at the page boundary; callers
// that cannot guarantee uniqueness should page on a unique column instead.
func PaginateWithCursor[T any](
	ctx context.Context,
	base *gorm.DB,
	cursorColumn string,
	value CursorValue[T],
	input CursorInput,
) (*CursorPaginationResult[T], error) {
	if value == nil {
		return nil, fmt.Errorf("cannot paginate: nil cursor value getter for column '%s'", cursorColumn)
	}
	if err := validateColumnName(cursorColumn); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	validLimit := NormalizeLimit(input.Limit)

	operator := lo.Ternary(input.Direction == PageBackward, OperatorLT, OperatorGT)
	orderings := Orderings{{Column: cursorColumn, Direction: operator.ForOrdering()}}

	query := base.WithContext(ctx).Session(&gorm.Session{})

	if input.Cursor != "" {
		decoded, err := DecodeCursor(input.Cursor)
		if err != nil {
			return nil, err
		}

		query = query.Clauses(clause.Expr{
			SQL:  fmt.Sprintf("%s %s ?", cursorColumn, operator),
			Vars: []any{parseCursorValue(decoded)},
		})
	}

	// Lookahead: fetch one extra record to determine if there is a next page.
	query = orderings.Apply(query).Limit(validLimit + 1)

	var results []T
	if err := query.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	hasNextPage := len(results) > validLimit
	items := results[:min(len(results), validLimit)]

	var nextCursor *string
	if hasNextPage && len(items) > 0 {
		nextCursor = lo.ToPtr(EncodeCursor(value(items[len(items)-1])))
	}

	var prevCursor *string
	if input.Cursor != "" {
		prevCursor = lo.ToPtr(input.Cursor)
	}

	return &CursorPaginationResult[T]{
		Data:        items,
		NextCursor:  nextCursor,
		PrevCursor:  prevCursor,
		HasNextPage: hasNextPage,
		HasPrevPage: input.Cursor != "",
	}, nil
}
