package query

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Sort struct {
	Field string `json:"id"`
	Desc  bool   `json:"desc"`
}

type Filter struct {
	Field string `json:"id"`
	Value string `json:"value"`
}

// Request is the uniform list input shared by every entity.
type Request struct {
	Pagination Pagination `json:"pagination"`
	Sort       []Sort     `json:"sort"`
	Filter     []Filter   `json:"filter"`
}

// Page is the uniform list output.
type Page[T any] struct {
	Rows        []T   `json:"rows"`
	PageCount   int   `json:"pageCount"`
	CurrentPage int   `json:"currentPage"`
	Total       int64 `json:"total"`
	Limit       int   `json:"-"`
}

// PageCount is ceil(total/limit).
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// MapPage converts rows while keeping the paging numbers.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	rows := make([]R, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, fn(r))
	}
	return Page[R]{
		Rows:        rows,
		PageCount:   p.PageCount,
		CurrentPage: p.CurrentPage,
		Total:       p.Total,
		Limit:       p.Limit,
	}
}
