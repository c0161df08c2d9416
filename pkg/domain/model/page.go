package model

// PageResult 是一页数据及其分页信息
type PageResult[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}
