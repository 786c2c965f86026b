package services

import (
	"math"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

func (c PageConfig) withDefaults() PageConfig {
	if c.DefaultSize <= 0 {
		c.DefaultSize = DefaultPageSize
	}
	if c.MaxSize <= 0 {
		c.MaxSize = MaxPageSize
	}
	if c.DefaultSize > c.MaxSize {
		c.DefaultSize = c.MaxSize
	}
	return c
}

// pageWindow is a validated 1-based page request.
type pageWindow struct {
	Page     int
	PageSize int
}

// Offset is the number of rows before the page. Pages too far out to address
// saturate at math.MaxInt64, which is past any table.
func (w pageWindow) Offset() int64 {
	skip, size := int64(w.Page-1), int64(w.PageSize)
	if size <= 0 {
		return 0
	}
	if skip > math.MaxInt64/size {
		return math.MaxInt64
	}
	return skip * size
}

// resolve validates page/pageSize. pageSize 0 selects the default size and
// oversized requests are capped at MaxSize.
func (c PageConfig) resolve(op string, page, pageSize int) (pageWindow, error) {
	c = c.withDefaults()
	if page < 1 {
		return pageWindow{}, domainagg.Validation(op, domainagg.FieldPage, "page must be >= 1")
	}
	if pageSize < 0 {
		return pageWindow{}, domainagg.Validation(op, domainagg.FieldPageSize, "page_size must be >= 0")
	}
	if pageSize == 0 {
		pageSize = c.DefaultSize
	}
	if pageSize > c.MaxSize {
		pageSize = c.MaxSize
	}
	return pageWindow{Page: page, PageSize: pageSize}, nil
}
