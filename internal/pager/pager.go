// Package pager keeps the current page of a list that is shown a fixed
// number of items at a time.
package pager

// PageSize is the number of items per page.
const PageSize = 15

// Pager is a value type; navigation methods that fall outside the valid
// range leave it unchanged.
type Pager struct {
	page  int
	total int
}

// New returns a pager on the first page of n items.
func New(n int) Pager {
	if n < 0 {
		n = 0
	}
	return Pager{page: 1, total: n}
}

// Page is the current 1-indexed page.
func (p Pager) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Total is the number of items being paged.
func (p Pager) Total() int { return p.total }

// TotalPages is ceil(total / PageSize).
func (p Pager) TotalPages() int {
	return (p.total + PageSize - 1) / PageSize
}

// HasPrev reports whether Prev would move.
func (p Pager) HasPrev() bool { return p.Page() > 1 }

// HasNext reports whether Next would move.
func (p Pager) HasNext() bool { return p.Page() < p.TotalPages() }

// Goto moves to page k and reports whether it moved.
func (p *Pager) Goto(k int) bool {
	if k < 1 || k > p.TotalPages() {
		return false
	}
	p.page = k
	return true
}

func (p *Pager) Next() bool { return p.Goto(p.Page() + 1) }

func (p *Pager) Prev() bool { return p.Goto(p.Page() - 1) }

// Resize changes the item count and clamps the current page into range.
func (p *Pager) Resize(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
	if last := p.TotalPages(); p.page > last {
		p.page = last
	}
	if p.page < 1 {
		p.page = 1
	}
}

// Bounds returns the half-open item range of the current page.
func (p Pager) Bounds() (start, end int) {
	start = (p.Page() - 1) * PageSize
	end = start + PageSize
	if start > p.total {
		start = p.total
	}
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Slice returns the items of the current page.
func Slice[T any](items []T, p Pager) []T {
	p.Resize(len(items))
	start, end := p.Bounds()
	return items[start:end]
}

// Info is the serialisable view of a pager.
type Info struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func (p Pager) Info() Info {
	return Info{
		Page:       p.Page(),
		PageSize:   PageSize,
		Total:      p.total,
		TotalPages: p.TotalPages(),
	}
}
