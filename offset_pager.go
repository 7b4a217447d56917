package pager

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginate runs offset pagination over a composable base query.
//
// The caller-supplied page and limit are normalized first, the sort key is
// resolved against the whitelist, and the optional search predicate is
// applied to the base query. The bounded data query and an independent
// COUNT(*) over table are then issued in parallel and joined before the
// envelope is built.
//
// The two queries observe the database independently; under concurrent
// writes total and data can disagree. That inconsistency window is an
// accepted approximation: pagination is read-only per call and provides no
// snapshot guarantee.
func Paginate[T any](
	ctx context.Context,
	base *gorm.DB,
	table string,
	sortable []SortableColumn,
	opts Options,
) (*PaginationResult[T], error) {
	rows, meta, err := fetchPage[T](ctx, base, table, sortable, opts, false)
	if err != nil {
		return nil, err
	}

	return newPaginationResult(rows, meta), nil
}

// PaginateWithEnhance is Paginate with a post-fetch enrichment step: the
// fetched rows are threaded through fn before landing in the envelope's
// Data. Pagination metadata is computed from the pre-enhance count and is
// never affected by the enrichment step; fn must not add, drop or reorder
// rows, which the pipeline enforces structurally. In this variant the count
// query is scoped by the same search filter as the data query.
func PaginateWithEnhance[In, Out any](
	ctx context.Context,
	base *gorm.DB,
	table string,
	sortable []SortableColumn,
	opts Options,
	fn EnhanceFunc[In, Out],
) (*PaginationResult[Out], error) {
	rows, meta, err := fetchPage[In](ctx, base, table, sortable, opts, true)
	if err != nil {
		return nil, err
	}

	enhanced, err := enhanceRows(ctx, rows, fn)
	if err != nil {
		return nil, err
	}

	return newPaginationResult(enhanced, meta), nil
}

// pageMeta is the envelope metadata computed by fetchPage, independent of
// the row type the envelope ends up carrying.
type pageMeta struct {
	total   int64
	page    int
	limit   int
	sortBy  string
	sortDir Direction
}

func fetchPage[T any](
	ctx context.Context,
	base *gorm.DB,
	table string,
	sortable []SortableColumn,
	opts Options,
	scopeCount bool,
) ([]T, pageMeta, error) {
	validPage := NormalizePage(opts.Page)
	validLimit := NormalizeLimit(opts.Limit)

	orderings, sortBy := resolveSort(sortable, opts.SortBy, opts.SortDirection)
	if err := orderings.validate(); err != nil {
		return nil, pageMeta{}, fmt.Errorf("cannot paginate: %w", err)
	}

	var searchExpr clause.Expression
	if opts.Query != "" {
		var err error
		searchExpr, err = buildSearchPredicate(opts.SearchColumns, opts.Query, opts.SimpleSearch)
		if err != nil {
			return nil, pageMeta{}, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	dataQuery := base.WithContext(gctx).Session(&gorm.Session{})
	if searchExpr != nil {
		dataQuery = dataQuery.Clauses(searchExpr)
	}
	dataQuery = orderings.Apply(dataQuery).
		Limit(validLimit).
		Offset((validPage - 1) * validLimit)

	// The count runs on a fresh session of the same handle: same pool, no
	// inherited SELECT/ORDER state from the base query.
	countQuery := base.WithContext(gctx).Session(&gorm.Session{NewDB: true}).Table(table)
	if scopeCount && searchExpr != nil {
		countQuery = countQuery.Clauses(searchExpr)
	}

	var (
		rows  []T
		total int64
	)
	g.Go(func() error {
		return dataQuery.Find(&rows).Error
	})
	g.Go(func() error {
		return countQuery.Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		return nil, pageMeta{}, fmt.Errorf("failed to fetch data: %w", err)
	}

	return rows, pageMeta{
		total:   total,
		page:    validPage,
		limit:   validLimit,
		sortBy:  sortBy,
		sortDir: orderings[0].Direction,
	}, nil
}

func newPaginationResult[T any](rows []T, meta pageMeta) *PaginationResult[T] {
	totalPages := int((meta.total + int64(meta.limit) - 1) / int64(meta.limit))

	return &PaginationResult[T]{
		Data:          rows,
		Total:         meta.total,
		Page:          meta.page,
		Limit:         meta.limit,
		HasNextPage:   meta.page < totalPages,
		HasPrevPage:   meta.page > 1,
		CurrentPage:   meta.page,
		TotalPages:    totalPages,
		Pages:         GeneratePageNumbers(meta.page, totalPages),
		SortBy:        meta.sortBy,
		SortDirection: meta.sortDir,
	}
}
