// Package pagination 提供内存切片的分页。
package pagination

import (
	"strconv"
	"strings"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
)

// Paginate 返回 items 的第 requestedPage 页。
// 页码被夹在 [1, max(TotalPages, 1)] 之间；pageSize 不为正数时按 1 处理。
// 返回的 Items 与 items 共享底层数组，调用方不应修改。
func Paginate[T any](items []T, requestedPage, pageSize int) model.PageResult[T] {
	if pageSize <= 0 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	current := max(requestedPage, 1)
	current = min(current, max(totalPages, 1))

	start := min((current-1)*pageSize, total)
	end := min(start+pageSize, total)

	return model.PageResult[T]{
		Items:       items[start:end:end],
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
	}
}

// ParsePage 解析查询参数中的页码，无法解析时返回 1。
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}
