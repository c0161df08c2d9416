/*
 * @Description: 博客页面处理器
 * @Author: 安知鱼
 * @Date: 2026-02-04 08:36:09
 * @LastEditTime: 2026-02-21 11:23:39
 * @LastEditors: 安知鱼
 */

// Package blog 处理博客的 HTML 页面：首页、文章详情、标签页与 404。
package blog

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/pagination"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/parser"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/view"
)

const (
	cacheControlPage     = "public, max-age=300, s-maxage=3600"
	cacheControlNotFound = "public, max-age=60"
	cacheControlError    = "no-cache, no-store, must-revalidate"

	contentTypeHTML = "text/html; charset=utf-8"

	errorMessage = "Failed to load posts from GitHub. Please try again later."
)

// Handler 博客页面处理器
type Handler struct {
	postSvc   gist.Service
	parserSvc *parser.Service
	viewSvc   view.Service
	pageSize  int
	logger    *slog.Logger
}

// NewHandler 创建博客页面处理器
func NewHandler(postSvc gist.Service, parserSvc *parser.Service, viewSvc view.Service, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Handler{
		postSvc:   postSvc,
		parserSvc: parserSvc,
		viewSvc:   viewSvc,
		pageSize:  pageSize,
		logger:    slog.Default().With("component", "blog"),
	}
}

// Index 首页，按 ?page= 分页
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	posts, err := h.postSvc.ListPosts(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	tags, err := h.postSvc.Tags(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	page := pagination.Paginate(posts, pagination.ParsePage(c.Query("page")), h.pageSize)

	var buf bytes.Buffer
	if err := h.viewSvc.RenderIndex(&buf, view.IndexPage{Page: page, Tags: tags}); err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, http.StatusOK, cacheControlPage, &buf)
}

// Post 文章详情页
func (h *Handler) Post(c *gin.Context) {
	post, err := h.postSvc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	// 内置渲染器会转义全部原始 HTML，goldmark 的输出经过 bluemonday 过滤
	body := h.parserSvc.RenderFile(post.Filename, post.Content)

	var buf bytes.Buffer
	err = h.viewSvc.RenderPost(&buf, view.PostPage{
		Post:     *post,
		Body:     template.HTML(body),
		Markdown: parser.IsMarkdownFile(post.Filename),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, http.StatusOK, cacheControlPage, &buf)
}

// Tag 标签页，未知标签返回空列表而不是 404
func (h *Handler) Tag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		h.NotFound(c)
		return
	}

	posts, err := h.postSvc.PostsByTag(c.Request.Context(), tag)
	if err != nil {
		h.fail(c, err)
		return
	}

	page := pagination.Paginate(posts, pagination.ParsePage(c.Query("page")), h.pageSize)

	var buf bytes.Buffer
	if err := h.viewSvc.RenderTag(&buf, view.TagPage{Tag: tag, Page: page}); err != nil {
		h.fail(c, err)
		return
	}
	h.write(c, http.StatusOK, cacheControlPage, &buf)
}

// NotFound 渲染 404 页面，也用作 gin 的 NoRoute 处理器
func (h *Handler) NotFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.viewSvc.RenderNotFound(&buf); err != nil {
		h.logger.Error("渲染 404 页面失败", "error", err)
		c.String(http.StatusNotFound, "404 - Not Found")
		return
	}
	h.write(c, http.StatusNotFound, cacheControlNotFound, &buf)
}

// fail 把 ErrNotFound 映射为 404，其余错误映射为 500 错误页
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, constant.ErrNotFound) {
		h.NotFound(c)
		return
	}

	h.logger.Error("处理页面请求失败", "path", c.Request.URL.Path, "error", err)

	var buf bytes.Buffer
	if renderErr := h.viewSvc.RenderError(&buf, errorMessage); renderErr != nil {
		h.logger.Error("渲染错误页面失败", "error", renderErr)
		c.Header("Cache-Control", cacheControlError)
		c.String(http.StatusInternalServerError, errorMessage)
		return
	}
	h.write(c, http.StatusInternalServerError, cacheControlError, &buf)
}

func (h *Handler) write(c *gin.Context, status int, cacheControl string, buf *bytes.Buffer) {
	c.Header("Cache-Control", cacheControl)
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(status, contentTypeHTML, buf.Bytes())
}
