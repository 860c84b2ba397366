package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based window over the course catalogue
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes a requested page. Non-positive values fall back to the first page
// and the default size; sizes above MaxPageSize are capped.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// PageFromQuery reads ?page= and ?size=, ignoring values that are not integers
func PageFromQuery(c *gin.Context) Page {
	number, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	return NewPage(number, size)
}

// Offset is the number of rows to skip
func (p Page) Offset() uint64 {
	return uint64(p.Number-1) * uint64(p.Size)
}

// Info describes this page for a list of total rows. An empty list still reports one page,
// and a page past the end reports the last page.
func (p Page) Info(total int64) dto.PaginationInfo {
	pages := 1
	if total > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	current := p.Number
	if current > pages {
		current = pages
	}
	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  pages,
		PageSize:    p.Size,
		TotalItems:  total,
	}
}
