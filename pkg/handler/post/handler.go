/*
 * @Description: 文章 JSON 接口处理器
 * @Author: 安知鱼
 * @Date: 2026-02-03 14:39:24
 * @LastEditTime: 2026-02-07 16:22:38
 * @LastEditors: 安知鱼
 */

// Package post 提供文章的 JSON 接口。
package post

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/pagination"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/response"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// MaxPageSize 是接口允许的最大每页数量
const MaxPageSize = 100

// Handler 文章接口处理器
type Handler struct {
	postSvc  gist.Service
	pageSize int
}

// NewHandler 创建文章接口处理器
func NewHandler(postSvc gist.Service, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Handler{postSvc: postSvc, pageSize: pageSize}
}

// ListPosts 分页返回文章摘要
// 查询参数：page、page_size，以及可选的 tag 过滤
func (h *Handler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		posts []model.Post
		err   error
	)
	if tag := c.Query("tag"); tag != "" {
		posts, err = h.postSvc.PostsByTag(ctx, tag)
	} else {
		posts, err = h.postSvc.ListPosts(ctx)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	summaries := make([]model.PostSummary, len(posts))
	for i := range posts {
		summaries[i] = posts[i].Summary()
	}

	page := pagination.Paginate(summaries, pagination.ParsePage(c.Query("page")), h.parsePageSize(c.Query("page_size")))
	response.Success(c, page, "获取文章列表成功")
}

// GetPost 返回单篇文章，包含原始内容
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postSvc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, post, "获取文章成功")
}

// ListTags 返回按使用次数排序的标签
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.postSvc.Tags(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if tags == nil {
		tags = []model.TagCount{}
	}
	response.Success(c, tags, "获取标签列表成功")
}

func (h *Handler) parsePageSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return h.pageSize
	}
	return min(size, MaxPageSize)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, constant.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "文章不存在")
	case errors.Is(err, constant.ErrSourceUnavailable):
		log.Printf("[Post Handler] 数据源不可用: %v", err)
		response.Fail(c, http.StatusBadGateway, "获取 gist 失败")
	default:
		log.Printf("[Post Handler] 处理请求失败: %v", err)
		response.Fail(c, http.StatusInternalServerError, "服务器内部错误")
	}
}
