package core

// Page mirrors the paginated list shape of the remote API. Guest mode always
// returns every match on a single page.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// SinglePage wraps items in a one-page result.
func SinglePage[T any](items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: len(items),
		TotalPages: 1,
		Page:       1,
		PageSize:   len(items),
	}
}
