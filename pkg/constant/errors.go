/*
 * @Description: 统一错误定义
 * @Author: 安知鱼
 * @Date: 2026-03-22 20:14:09
 * @LastEditTime: 2026-03-22 20:14:09
 * @LastEditors: 安知鱼
 */
package constant

import (
	"errors"
	"fmt"
)

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到（未知的文章、标签或路由），由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrSourceUnavailable 表示 gist 数据源请求失败，由 Handler 转换为 500
	ErrSourceUnavailable = errors.New("无法从 GitHub 获取 gist，请检查用户名和令牌")

	// ErrBadRequest 表示请求参数错误，由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")
)

// SourceError 携带数据源返回的状态码与响应内容
type SourceError struct {
	StatusCode int
	Message    string
}

func (e *SourceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", ErrSourceUnavailable.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", ErrSourceUnavailable.Error(), e.StatusCode, e.Message)
}

// Unwrap 使 errors.Is(err, ErrSourceUnavailable) 成立
func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}
