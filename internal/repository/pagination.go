package repository

import (
	"fmt"
	"net/url"
	"strconv"
)

// Meta describes where a page sits inside the full result set.
type Meta struct {
	Total           int64   `json:"total"`
	PerPage         int     `json:"perPage"`
	CurrentPage     int     `json:"currentPage"`
	LastPage        int     `json:"lastPage"`
	FirstPage       int     `json:"firstPage"`
	FirstPageURL    string  `json:"firstPageUrl"`
	LastPageURL     string  `json:"lastPageUrl"`
	NextPageURL     *string `json:"nextPageUrl"`
	PreviousPageURL *string `json:"previousPageUrl"`
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Meta Meta `json:"meta"`
	Data []T  `json:"data"`
}

// NewPage computes pagination metadata. Page URLs are left empty until
// WithBaseURL is called.
func NewPage[T any](data []T, total int64, page, perPage int) *Page[T] {
	if data == nil {
		data = []T{}
	}

	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}

	return &Page[T]{
		Meta: Meta{
			Total:       total,
			PerPage:     perPage,
			CurrentPage: page,
			LastPage:    lastPage,
			FirstPage:   1,
		},
		Data: data,
	}
}

// HasMorePages reports whether a page exists after the current one.
func (p *Page[T]) HasMorePages() bool {
	return p.Meta.CurrentPage < p.Meta.LastPage
}

// WithBaseURL fills the page URLs for the given path. extra query values
// (perPage for instance) are carried into every URL.
func (p *Page[T]) WithBaseURL(path string, extra url.Values) *Page[T] {
	link := func(n int) string {
		q := url.Values{}
		for k, vs := range extra {
			q[k] = append([]string(nil), vs...)
		}
		q.Set("page", strconv.Itoa(n))
		return fmt.Sprintf("%s?%s", path, q.Encode())
	}

	p.Meta.FirstPageURL = link(p.Meta.FirstPage)
	p.Meta.LastPageURL = link(p.Meta.LastPage)
	p.Meta.NextPageURL = nil
	p.Meta.PreviousPageURL = nil

	if p.HasMorePages() {
		next := link(p.Meta.CurrentPage + 1)
		p.Meta.NextPageURL = &next
	}
	if p.Meta.CurrentPage > 1 {
		prev := link(p.Meta.CurrentPage - 1)
		p.Meta.PreviousPageURL = &prev
	}
	return p
}
