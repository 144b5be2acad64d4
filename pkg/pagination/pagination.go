package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page window. Offset is precomputed for repositories.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page/limit from the query string, falling back to the
// defaults and clamping limit to MaxLimit. Bad values never error; they
// are treated as absent.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Envelope wraps a page of items with the paging metadata every list
// endpoint returns. The items appear under key so each resource keeps its
// natural plural name.
func (p Params) Envelope(key string, items interface{}, total int64) map[string]interface{} {
	return map[string]interface{}{
		key:           items,
		"total":       total,
		"page":        p.Page,
		"limit":       p.Limit,
		"total_pages": p.TotalPages(total),
	}
}

// TotalPages reports how many pages total rows span at the current limit.
func (p Params) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}
