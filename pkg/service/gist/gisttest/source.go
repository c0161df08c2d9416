// Package gisttest 提供测试用的内存 gist 数据源。
package gisttest

import (
	"context"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/cache"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// Source 把固定的 gist 列表当作一页返回
type Source struct {
	Gists []model.GistRecord
	Err   error
}

func (s *Source) ListByUser(_ context.Context, _ string, page, _ int) ([]model.GistRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if page > 1 {
		return nil, nil
	}
	return s.Gists, nil
}

func (s *Source) GetByID(_ context.Context, id string) (*model.GistRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Gists {
		if s.Gists[i].ID == id {
			return &s.Gists[i], nil
		}
	}
	return nil, constant.ErrNotFound
}

// Record 构造一个只含单个文件的公开 gist
func Record(id, description, filename, content string, created time.Time) model.GistRecord {
	files := orderedmap.New[string, model.GistFile]()
	files.Set(filename, model.GistFile{Filename: filename, Content: content})
	return model.GistRecord{
		ID:          id,
		Description: description,
		Files:       files,
		CreatedAt:   created,
		UpdatedAt:   created.Add(24 * time.Hour),
		HTMLURL:     "https://gist.github.com/" + id,
		Public:      true,
	}
}

// NewService 基于 Source 创建不带缓存的文章服务
func NewService(src *Source) gist.Service {
	return gist.NewService(src, cache.NewLayer(nil), gist.Options{User: "octocat", PerPage: 100})
}
