package helpers

import (
	"strconv"
)

const (
	DefaultPageSize = 5
	MaxPageSize     = 50
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// StringToID parses a positive integer primary key from a path parameter.
func StringToID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

type Pagination struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPagination normalizes raw page and page_size values. Missing or
// non-positive values fall back to the defaults; page_size is capped.
func GetPagination(page, pageSize string) Pagination {
	pageNum, err := StringToInt(page)
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	size, err := StringToInt(pageSize)
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Pagination{
		Page:     pageNum,
		PageSize: size,
		Offset:   (pageNum - 1) * size,
	}
}

func (p Pagination) TotalPages(total int64) int64 {
	return (total + int64(p.PageSize) - 1) / int64(p.PageSize)
}
