package dto

// PaginatedResponse wraps one page of a list endpoint.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginatedResponse computes TotalPages from total and pageSize.
func NewPaginatedResponse[T any](data []T, total int64, page, pageSize int) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginatedResponse[T]{
		Data:       data,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
