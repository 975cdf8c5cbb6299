package navigator

// Paginator slices a fixed list into pages. Item indices shown to the user
// are always 1-based positions in the full list; paging moves a window,
// it never renumbers.
type Paginator struct {
	total    int
	pageSize int
	page     int // 0-based
}

// NewPaginator creates a paginator over total items.
func NewPaginator(total, pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{total: total, pageSize: pageSize}
}

// PageCount returns the number of pages, at least 1.
func (p *Paginator) PageCount() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Page returns the current page, 1-based for display.
func (p *Paginator) Page() int {
	return p.page + 1
}

// Bounds returns the half-open [start, end) range of full-list positions
// on the current page.
func (p *Paginator) Bounds() (int, int) {
	start := p.page * p.pageSize
	end := start + p.pageSize
	if end > p.total {
		end = p.total
	}
	if start > p.total {
		start = p.total
	}
	return start, end
}

// Next advances one page; it reports whether anything changed.
func (p *Paginator) Next() bool {
	if p.page+1 >= p.PageCount() {
		return false
	}
	p.page++
	return true
}

// Prev goes back one page; it reports whether anything changed.
func (p *Paginator) Prev() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	return true
}

// SetPage jumps to a 1-based page number. Out-of-range requests are
// rejected and the current page is unchanged.
func (p *Paginator) SetPage(n int) bool {
	if n < 1 || n > p.PageCount() {
		return false
	}
	p.page = n - 1
	return true
}
