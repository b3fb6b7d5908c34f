package utils

import (
	"strconv"

	"foodgram-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ParseID reads a positive int64 path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// QueryInt reads an int query parameter, def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Invalid(name, "must be an integer")
	}
	return v, nil
}

// QueryFlag is true for "1" or "true".
func QueryFlag(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true"
}

// Pagination is a normalized limit/offset window.
type Pagination struct {
	Limit  int
	Offset int
}

// NewPagination clamps limit into [1, max] (default def) and offset to >= 0.
func NewPagination(limit, offset, def, max int) Pagination {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// FromPage converts 1-based page numbering to an offset.
func FromPage(page, limit, def, max int) Pagination {
	p := NewPagination(limit, 0, def, max)
	if page > 1 {
		p.Offset = (page - 1) * p.Limit
	}
	return p
}

// PageLimits are the configured default and max page sizes.
type PageLimits struct {
	Default int
	Max     int
}

// Window reads ?limit=&offset=.
func (l PageLimits) Window(c *gin.Context) (Pagination, error) {
	limit, err := QueryInt(c, "limit", l.Default)
	if err != nil {
		return Pagination{}, err
	}
	offset, err := QueryInt(c, "offset", 0)
	if err != nil {
		return Pagination{}, err
	}
	return NewPagination(limit, offset, l.Default, l.Max), nil
}

// Page reads ?page=&limit=.
func (l PageLimits) Page(c *gin.Context) (Pagination, error) {
	page, err := QueryInt(c, "page", 1)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := QueryInt(c, "limit", l.Default)
	if err != nil {
		return Pagination{}, err
	}
	return FromPage(page, limit, l.Default, l.Max), nil
}
