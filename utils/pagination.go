package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	pageSizeDefault = 20
	pageSizeMax     = 100
)

// Page is an offset/limit window over a list endpoint.
type Page struct {
	Offset int
	Limit  int
}

// ParsePage reads the optional "offset" and "limit" query parameters.
// Missing parameters fall back to the first default-sized page; the
// limit is capped so a single request cannot pull the whole table.
func ParsePage(r *http.Request) (Page, error) {
	page := Page{Limit: pageSizeDefault}

	if s := r.URL.Query().Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return Page{}, fmt.Errorf("invalid 'offset' query parameter, must be a non-negative integer")
		}
		page.Offset = v
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return Page{}, fmt.Errorf("invalid 'limit' query parameter, must be a positive integer")
		}
		page.Limit = min(v, pageSizeMax)
	}

	return page, nil
}
