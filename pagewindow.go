package pager

import "encoding/json"

// PageRef is one entry of a page-number window: either a concrete page
// number or an ellipsis gap. It marshals to JSON as a number or "...",
// matching what UI pagination widgets consume.
type PageRef struct {
	Number   int
	Ellipsis bool
}

const _ellipsisMarker = "..."

func PageNumber(n int) PageRef {
	return PageRef{Number: n}
}

func EllipsisRef() PageRef {
	return PageRef{Ellipsis: true}
}

// MarshalJSON implements json.Marshaler.
func (p PageRef) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(_ellipsisMarker)
	}

	return json.Marshal(p.Number)
}

// GeneratePageNumbers returns a compact page-number window for the given
// position in the dataset. Up to 7 pages are listed exhaustively; beyond
// that the window always contains the first page, the last page, a
// 3-page-wide middle range around currentPage, and at most two ellipsis
// gaps. The output never duplicates a page number.
func GeneratePageNumbers(currentPage, totalPages int) []PageRef {
	if totalPages <= 7 {
		pages := make([]PageRef, 0, max(totalPages, 0))
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, PageNumber(i))
		}

		return pages
	}

	pages := make([]PageRef, 0, 9)
	pages = append(pages, PageNumber(1))

	if currentPage > 3 {
		pages = append(pages, EllipsisRef())
	}

	rangeStart := max(2, currentPage-1)
	rangeEnd := min(totalPages-1, currentPage+1)

	// Pin the middle range to the edges so the window keeps a stable width.
	if currentPage <= 3 {
		rangeEnd = 4
	}
	if currentPage >= totalPages-2 {
		rangeStart = totalPages - 3
	}

	for i := rangeStart; i <= rangeEnd; i++ {
		pages = append(pages, PageNumber(i))
	}

	if currentPage < totalPages-2 {
		pages = append(pages, EllipsisRef())
	}

	pages = append(pages, PageNumber(totalPages))

	return pages
}
