package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

// PageParams are the normalized pagination inputs of a listing request.
type PageParams struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for this page.
func (p PageParams) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// ParsePageParams reads page/limit query parameters, clamping them to
// page >= 1 and 1 <= limit <= 100 with sensible defaults.
func ParsePageParams(c *gin.Context) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageParams{Page: page, Limit: limit}
}

// BuildPagination assembles the envelope pagination block for a listing of
// total documents, attaching next/prev links where pages exist.
func BuildPagination(p PageParams, total int64) *Pagination {
	pg := &Pagination{Page: p.Page, Limit: p.Limit, Total: total}
	if int64(p.Page*p.Limit) < total {
		pg.Next = &PageLink{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.Page > 1 {
		pg.Prev = &PageLink{Page: p.Page - 1, Limit: p.Limit}
	}
	return pg
}
