package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		pageRaw    string
		perPageRaw string
		want       Params
	}{
		{name: "defaults", pageRaw: "", perPageRaw: "", want: Params{Page: 1, PerPage: 15}},
		{name: "explicit values", pageRaw: "3", perPageRaw: "25", want: Params{Page: 3, PerPage: 25}},
		{name: "per_page clamped to 100", pageRaw: "1", perPageRaw: "500", want: Params{Page: 1, PerPage: 100}},
		{name: "zero page falls back", pageRaw: "0", perPageRaw: "0", want: Params{Page: 1, PerPage: 15}},
		{name: "negative values fall back", pageRaw: "-2", perPageRaw: "-5", want: Params{Page: 1, PerPage: 15}},
		{name: "garbage falls back", pageRaw: "abc", perPageRaw: "xyz", want: Params{Page: 1, PerPage: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.pageRaw, tt.perPageRaw, 15))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PerPage: 15}.Offset())
	assert.Equal(t, 30, Params{Page: 3, PerPage: 15}.Offset())
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		params       Params
		wantLastPage int
	}{
		{name: "exact multiple", total: 30, params: Params{Page: 1, PerPage: 15}, wantLastPage: 2},
		{name: "partial last page", total: 31, params: Params{Page: 1, PerPage: 15}, wantLastPage: 3},
		{name: "empty result still has one page", total: 0, params: Params{Page: 1, PerPage: 15}, wantLastPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage([]int{}, tt.params, tt.total)
			assert.Equal(t, tt.params.Page, page.CurrentPage)
			assert.Equal(t, tt.params.PerPage, page.PerPage)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantLastPage, page.LastPage)
		})
	}
}
