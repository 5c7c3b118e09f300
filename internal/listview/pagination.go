package listview

// DefaultPageSizes are the page sizes offered by the paginator.
var DefaultPageSizes = []int{10, 20, 25, 50}

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// Pagination owns the current page and page size. Page is 1-based.
//
// A new search resets the page; a new page size does not. After shrinking
// the result set or growing the page size the page can point past the last
// page. That is kept as-is.
type Pagination struct {
	page     int
	pageSize int
}

// NewPagination starts on page 1 with the given size (DefaultPageSize when
// size is not positive).
func NewPagination(pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Pagination{page: 1, pageSize: pageSize}
}

// Page returns the current 1-based page.
func (p Pagination) Page() int { return p.page }

// PageSize returns the current page size.
func (p Pagination) PageSize() int { return p.pageSize }

// ResetPage moves back to page 1.
func (p *Pagination) ResetPage() { p.page = 1 }

// SetPage moves to page n and reports whether anything changed. Values
// below 1 are clamped to 1.
func (p *Pagination) SetPage(n int) bool {
	if n < 1 {
		n = 1
	}
	if n == p.page {
		return false
	}
	p.page = n
	return true
}

// SetPageSize changes the page size and reports whether anything changed.
// The current page is left alone.
func (p *Pagination) SetPageSize(size int) bool {
	if size < 1 || size == p.pageSize {
		return false
	}
	p.pageSize = size
	return true
}

// ShowPaginator reports whether totalCount spans more than one page.
func (p Pagination) ShowPaginator(totalCount int) bool {
	return totalCount > p.pageSize
}

// TotalPages returns the number of pages needed for totalCount items.
func (p Pagination) TotalPages(totalCount int) int {
	if totalCount <= 0 {
		return 1
	}
	return (totalCount + p.pageSize - 1) / p.pageSize
}
