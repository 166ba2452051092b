// Package pagination implements offset pagination with the page metadata
// shape the API exposes: current page, page size, total row count and
// last page.
package pagination

import "strconv"

const maxPerPage = 100

// Params is a parsed page request.
type Params struct {
	Page    int
	PerPage int
}

// Parse builds Params from raw query values, falling back to page 1 and
// the given default page size. PerPage is clamped to [1, 100].
func Parse(pageRaw, perPageRaw string, defaultPerPage int) Params {
	p := Params{Page: 1, PerPage: defaultPerPage}

	if n, err := strconv.Atoi(pageRaw); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPageRaw); err == nil && n > 0 {
		p.PerPage = n
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// Offset returns the row offset for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is a paginated result slice with its metadata.
type Page struct {
	Data        any   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPage wraps data with the page metadata derived from params and the
// total row count.
func NewPage(data any, params Params, total int64) *Page {
	last := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	if last < 1 {
		last = 1
	}
	return &Page{
		Data:        data,
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		Total:       total,
		LastPage:    last,
	}
}
