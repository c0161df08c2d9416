/*
 * @Description: 文章服务
 * @Author: 安知鱼
 * @Date: 2026-03-24 08:01:50
 * @LastEditTime: 2026-03-26 23:16:12
 * @LastEditors: 安知鱼
 */

// Package gist 负责从 gist 数据源获取文章并做缓存。
package gist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/cache"
)

// Options 是文章服务的参数
type Options struct {
	User     string
	PerPage  int
	MaxPages int
	TTL      time.Duration
}

// Service 定义文章相关的读取操作
type Service interface {
	// ListPosts 返回所有已发布文章，按创建时间倒序
	ListPosts(ctx context.Context) ([]model.Post, error)
	// GetPost 返回单篇文章，找不到时返回 constant.ErrNotFound
	GetPost(ctx context.Context, id string) (*model.Post, error)
	// PostsByTag 返回带有指定标签的文章，区分大小写
	PostsByTag(ctx context.Context, tag string) ([]model.Post, error)
	// Tags 返回按使用次数排序的标签
	Tags(ctx context.Context) ([]model.TagCount, error)
	// Refresh 忽略缓存新鲜度重新拉取列表，并清除单篇文章缓存，返回文章数量
	Refresh(ctx context.Context) (int, error)
}

type serviceImpl struct {
	source repository.GistSource
	cache  *cache.Layer
	opts   Options
}

// NewService 创建文章服务
func NewService(source repository.GistSource, layer *cache.Layer, opts Options) Service {
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 10
	}
	return &serviceImpl{source: source, cache: layer, opts: opts}
}

func (s *serviceImpl) ListPosts(ctx context.Context) ([]model.Post, error) {
	return cache.Remember(ctx, s.cache, constant.CacheKeyPostList, s.opts.TTL, s.fetchAll)
}

// fetchAll 逐页拉取，遇到空页、不满一页或达到页数上限时停止
func (s *serviceImpl) fetchAll(ctx context.Context) ([]model.Post, error) {
	if s.opts.User == "" {
		return nil, fmt.Errorf("%w: 未配置 GitHub 用户名", constant.ErrSourceUnavailable)
	}

	var posts []model.Post
	for page := 1; page <= s.opts.MaxPages; page++ {
		batch, err := s.source.ListByUser(ctx, s.opts.User, page, s.opts.PerPage)
		if err != nil {
			return nil, err
		}
		for _, raw := range batch {
			posts = append(posts, Normalize(raw))
		}
		if len(batch) < s.opts.PerPage {
			break
		}
	}

	return Publish(posts), nil
}

func (s *serviceImpl) GetPost(ctx context.Context, id string) (*model.Post, error) {
	if !validID(id) {
		return nil, constant.ErrNotFound
	}

	post, err := cache.Remember(ctx, s.cache, constant.PostCacheKey(id), s.opts.TTL, func(ctx context.Context) (model.Post, error) {
		raw, err := s.source.GetByID(ctx, id)
		if err != nil {
			return model.Post{}, err
		}
		if !raw.Public {
			return model.Post{}, constant.ErrNotFound
		}
		return Normalize(*raw), nil
	})
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, constant.ErrNotFound) {
		log.Printf("警告: 获取 gist %s 详情失败，回退到文章列表: %v", id, err)
	}

	// 详情不可用时从列表中查找
	posts, listErr := s.ListPosts(ctx)
	if listErr != nil {
		return nil, listErr
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, constant.ErrNotFound
}

func (s *serviceImpl) PostsByTag(ctx context.Context, tag string) ([]model.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	tagged := make([]model.Post, 0)
	for _, p := range posts {
		if p.HasTag(tag) {
			tagged = append(tagged, p)
		}
	}
	return tagged, nil
}

func (s *serviceImpl) Tags(ctx context.Context) ([]model.TagCount, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return TagCounts(posts), nil
}

func (s *serviceImpl) Refresh(ctx context.Context) (int, error) {
	posts, err := s.fetchAll(ctx)
	if err != nil {
		return 0, err
	}
	cache.Store(ctx, s.cache, constant.CacheKeyPostList, s.opts.TTL, posts)

	removed, err := s.cache.InvalidatePattern(ctx, constant.CacheKeyPostPrefix+"*")
	if err != nil {
		log.Printf("警告: 清除文章详情缓存失败: %v", err)
	} else if removed > 0 {
		log.Printf("已清除 %d 条文章详情缓存", removed)
	}
	return len(posts), nil
}

// validID 只接受字母和数字，避免把任意路径转发给数据源
func validID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, c := range id {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
