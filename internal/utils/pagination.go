package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
)

// Page is a 1-based window over an ordered result set.
type Page struct {
	Number int
	Size   int
}

// FirstPage returns the first page of the given size.
func FirstPage(size int) Page {
	return Page{Number: 1, Size: size}
}

// Offset is the number of rows before the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageInfo is the pagination block returned next to a page of results.
type PageInfo struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// Info describes p given the total number of matching rows.
func (p Page) Info(total int64) PageInfo {
	return PageInfo{
		Page:    p.Number,
		Limit:   p.Size,
		Total:   total,
		HasMore: int64(p.Offset()+p.Size) < total,
	}
}

// ParsePage reads page and limit from the query string.
// Garbage falls back to the defaults; a limit above MaxPageSize is clamped.
func ParsePage(c *gin.Context) Page {
	number, err := strconv.Atoi(c.Query("page"))
	if err != nil || number < 1 {
		number = 1
	}

	size, err := strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil || size < constants.MinPageSize:
		size = constants.DefaultPageSize
	case size > constants.MaxPageSize:
		size = constants.MaxPageSize
	}

	return Page{Number: number, Size: size}
}
