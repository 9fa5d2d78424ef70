package pagination

import (
	"math"
	"strconv"
	"strings"
)

const DefaultPage = 1

type Options struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	DefaultOpts = Options{DefaultLimit: 10, MaxLimit: 100}
	AdminOpts   = Options{DefaultLimit: 20, MaxLimit: 200}
)

type Params struct {
	Page  int
	Limit int
}

// Parse reads raw page/limit query values. Missing or invalid values fall
// back to the defaults, and limit is capped at MaxLimit.
func Parse(pageRaw, limitRaw string, opt Options) Params {
	page := atoiDefault(pageRaw, DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := atoiDefault(limitRaw, opt.DefaultLimit)
	if limit < 1 {
		limit = opt.DefaultLimit
	}
	if limit > opt.MaxLimit {
		limit = opt.MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// Page is one page of a listing.
type Page[T any] struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Items []T   `json:"items"`
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Page[T]{
		Count: len(items),
		Total: total,
		Page:  p.Page,
		Pages: pages,
		Items: items,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
