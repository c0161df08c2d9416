/*
 * @Description: gist 数据源接口
 * @Author: 安知鱼
 * @Date: 2026-03-02 14:04:13
 * @LastEditTime: 2026-03-05 13:07:21
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
)

// GistSource 是 gist 数据源接口
type GistSource interface {
	// ListByUser 获取用户的一页 gist，空切片表示没有更多数据
	ListByUser(ctx context.Context, user string, page, perPage int) ([]model.GistRecord, error)

	// GetByID 获取单个 gist 的完整内容，不存在时返回 constant.ErrNotFound
	GetByID(ctx context.Context, id string) (*model.GistRecord, error)
}
