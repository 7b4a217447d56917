package pager

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tBug struct {
	ID        uint
	Title     string
	CreatedAt time.Time
}

var _bugSortable = []SortableColumn{
	{Name: "title", Column: "title"},
	{Name: "createdAt", Column: "created_at"},
}

func bugRows(n int, offset int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "created_at"})
	for i := 1; i <= n; i++ {
		rows.AddRow(offset+i, fmt.Sprintf("bug-%d", offset+i), time.Now())
	}

	return rows
}

func countRows(total int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(total)
}

func Test_Paginate_Scenario23Rows(t *testing.T) {
	mockFnList := []mockFn{newMySQLMock, newPostgresMock}

	tests := []struct {
		name          string
		page          int
		rowCount      int
		expectedQuery string
		wantHasNext   bool
		wantHasPrev   bool
	}{
		{
			name:          "page 1 of 3",
			page:          1,
			rowCount:      10,
			expectedQuery: "^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY created_at asc LIMIT 10$",
			wantHasNext:   true,
			wantHasPrev:   false,
		},
		{
			name:          "page 3 of 3",
			page:          3,
			rowCount:      3,
			expectedQuery: "^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY created_at asc LIMIT 10 OFFSET 20$",
			wantHasNext:   false,
			wantHasPrev:   true,
		},
	}

	for _, newMock := range mockFnList {
		for _, tt := range tests {
			dialect, db, dbMock := newMock(t)
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				dbMock.MatchExpectationsInOrder(false)
				dbMock.ExpectQuery(tt.expectedQuery).
					WillReturnRows(bugRows(tt.rowCount, (tt.page-1)*10))
				dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
					WillReturnRows(countRows(23))

				result, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
					Page:   tt.page,
					Limit:  10,
					SortBy: "createdAt",
				})
				require.NoError(t, err)

				assert.Len(t, result.Data, tt.rowCount)
				assert.EqualValues(t, 23, result.Total)
				assert.Equal(t, tt.page, result.CurrentPage)
				assert.Equal(t, tt.page, result.Page)
				assert.Equal(t, 10, result.Limit)
				assert.Equal(t, 3, result.TotalPages)
				assert.Equal(t, tt.wantHasNext, result.HasNextPage)
				assert.Equal(t, tt.wantHasPrev, result.HasPrevPage)
				assert.Equal(t, refs(1, 2, 3), result.Pages)
				assert.Equal(t, "createdAt", result.SortBy)
				assert.Equal(t, DirectionASC, result.SortDirection)

				assert.NoError(t, dbMock.ExpectationsWereMet())
			})
		}
	}
}

func Test_Paginate_NormalizesPageAndLimit(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY title asc LIMIT 10$").
		WillReturnRows(bugRows(2, 0))
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
		WillReturnRows(countRows(2))

	result, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
		Page:  -3,
		Limit: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, DefaultLimit, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	assert.False(t, result.HasNextPage)
	assert.False(t, result.HasPrevPage)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_Paginate_SortFallback(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY title asc LIMIT 10$").
		WillReturnRows(bugRows(1, 0))
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
		WillReturnRows(countRows(1))

	result, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
		Limit:  10,
		SortBy: "nonexistent",
	})
	require.NoError(t, err)

	// The echoed sort key is the fallback entry, never the raw request.
	assert.Equal(t, "title", result.SortBy)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_Paginate_SearchAppliedToDataOnly(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] WHERE CAST\\(title AS TEXT\\) ILIKE (?:\\$\\d|\\?) ORDER BY created_at asc LIMIT 10$").
		WithArgs("%bug%").
		WillReturnRows(bugRows(1, 0))
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
		WillReturnRows(countRows(1))

	result, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
		Limit:         10,
		SortBy:        "createdAt",
		Query:         "bug",
		SimpleSearch:  true,
		SearchColumns: []string{"title"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Data, 1)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_Paginate_SearchWithoutColumns(t *testing.T) {
	_, db, _ := newPostgresMock(t)

	_, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
		Limit: 10,
		Query: "bug",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSearchColumns)
}

func Test_Paginate_QueryErrorWrapped(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY title asc LIMIT 10$").
		WillReturnError(fmt.Errorf("connection reset"))
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
		WillReturnRows(countRows(0))

	_, err := Paginate[tBug](context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch data")
	assert.Contains(t, err.Error(), "connection reset")
}

type tBugWithURL struct {
	tBug
	URL string
}

func Test_PaginateWithEnhance(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] WHERE CAST\\(title AS TEXT\\) ILIKE (?:\\$\\d|\\?) ORDER BY created_at asc LIMIT 10$").
		WithArgs("%bug%").
		WillReturnRows(bugRows(3, 0))
	// In the enhance variant the count is scoped by the same filter.
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"] WHERE CAST\\(title AS TEXT\\) ILIKE (?:\\$\\d|\\?)$").
		WithArgs("%bug%").
		WillReturnRows(countRows(3))

	enhance := func(_ context.Context, row tBug) (tBugWithURL, error) {
		return tBugWithURL{tBug: row, URL: fmt.Sprintf("https://files.local/%d", row.ID)}, nil
	}

	result, err := PaginateWithEnhance(context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{
		Limit:         10,
		SortBy:        "createdAt",
		Query:         "bug",
		SimpleSearch:  true,
		SearchColumns: []string{"title"},
	}, enhance)
	require.NoError(t, err)

	// Enrichment preserves row count and order; metadata comes from the
	// pre-enhance count.
	require.Len(t, result.Data, 3)
	for i, row := range result.Data {
		assert.EqualValues(t, i+1, row.ID)
		assert.Equal(t, fmt.Sprintf("https://files.local/%d", row.ID), row.URL)
	}
	assert.EqualValues(t, 3, result.Total)
	assert.Equal(t, 1, result.TotalPages)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_PaginateWithEnhance_RowFailureFailsPage(t *testing.T) {
	_, db, dbMock := newPostgresMock(t)

	dbMock.MatchExpectationsInOrder(false)
	dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bugs[`'\"] ORDER BY title asc LIMIT 10$").
		WillReturnRows(bugRows(3, 0))
	dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bugs[`'\"]$").
		WillReturnRows(countRows(3))

	enhance := func(_ context.Context, row tBug) (tBugWithURL, error) {
		if row.ID == 2 {
			return tBugWithURL{}, fmt.Errorf("sign url: timeout")
		}
		return tBugWithURL{tBug: row}, nil
	}

	_, err := PaginateWithEnhance(context.Background(), db.Table("bugs"), "bugs", _bugSortable, Options{Limit: 10}, enhance)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enhance row")
	assert.Contains(t, err.Error(), "sign url: timeout")
}
