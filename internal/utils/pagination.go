package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
)

// Page is a resolved page of a listing. Number is always a valid page,
// at least 1 and at most NumPages.
type Page struct {
	Number  int
	PerPage int
	Total   int64
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page        int   `json:"page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParsePageNumber reads the raw ?page= value. Anything that is not an
// integer resolves to the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return constants.MinPageSize
	}
	return n
}

// GetPageNumber extracts the requested page number from the query string.
func GetPageNumber(c *gin.Context) int {
	return ParsePageNumber(c.DefaultQuery("page", "1"))
}

// NewPage resolves a requested page number against the listing size.
// Numbers outside 1..NumPages fall back to the last page.
func NewPage(number, perPage int, total int64) Page {
	if perPage < constants.MinPageSize {
		perPage = constants.MinPageSize
	}
	p := Page{Number: number, PerPage: perPage, Total: total}
	if last := p.NumPages(); number < 1 || number > last {
		p.Number = last
	}
	return p
}

// NumPages is never less than one, an empty listing still has a first page.
func (p Page) NumPages() int {
	if p.Total <= 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages()
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) Response() PaginationResponse {
	return PaginationResponse{
		Page:        p.Number,
		PerPage:     p.PerPage,
		Total:       p.Total,
		NumPages:    p.NumPages(),
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}
