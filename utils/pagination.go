package utils

import (
	"net/http"
	"strconv"
)

// Pagination is the metadata block returned with every list endpoint. Links
// preserve the caller's query string with only the page parameter swapped.
type Pagination struct {
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
	Total       int64   `json:"total"`
	LastPage    int     `json:"last_page"`
	PrevPageURL *string `json:"prev_page_url"`
	NextPageURL *string `json:"next_page_url"`
}

// PageParam reads the page query parameter, defaulting to 1.
func PageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate builds pagination metadata for the request.
func Paginate(r *http.Request, total int64, page, perPage int) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	p := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
	if page > 1 {
		p.PrevPageURL = pageURL(r, page-1)
	}
	if page < lastPage {
		p.NextPageURL = pageURL(r, page+1)
	}
	return p
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.Path + "?" + u.RawQuery
	return &s
}
