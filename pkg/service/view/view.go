/*
 * @Description: HTML 页面渲染
 * @Author: 安知鱼
 * @Date: 2026-03-27 12:34:09
 * @LastEditTime: 2026-03-27 22:49:11
 * @LastEditors: 安知鱼
 */

// Package view 渲染博客的 HTML 页面，模板通过 embed 打包进二进制。
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// DateLayout 是页面上展示日期的格式
const DateLayout = "Jan 2, 2006"

const defaultDescription = "Personal blog powered by GitHub Gists"

// 每个页面单独解析成一个模板集合，避免 "content" 定义互相覆盖
var pageFiles = map[string]string{
	pageIndex:    "templates/index.html",
	pageTag:      "templates/tag.html",
	pagePost:     "templates/post.html",
	pageNotFound: "templates/notfound.html",
	pageError:    "templates/error.html",
}

const (
	pageIndex    = "index"
	pageTag      = "tag"
	pagePost     = "post"
	pageNotFound = "notfound"
	pageError    = "error"
)

// SiteInfo 是页头与元信息使用的站点信息
type SiteInfo struct {
	Name        string
	Description string
	Tagline     string
	// URL 为空时不输出 canonical 链接
	URL string
}

// Meta 是页面的 SEO 元信息
type Meta struct {
	Description   string
	CanonicalURL  string
	OGType        string
	PublishedTime time.Time
	ModifiedTime  time.Time
	Tags          []string
}

// Nav 是分页导航
type Nav struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
}

// IndexPage 是首页数据
type IndexPage struct {
	Page model.PageResult[model.Post]
	Tags []model.TagCount
	Nav  Nav
}

// TagPage 是标签页数据
type TagPage struct {
	Tag  string
	Page model.PageResult[model.Post]
	Nav  Nav
}

// PostPage 是文章详情页数据，Body 必须是已经安全处理过的 HTML
type PostPage struct {
	Post     model.Post
	Body     template.HTML
	Markdown bool
}

type errorPage struct {
	Message string
}

type layoutData struct {
	Site    SiteInfo
	Title   string
	Meta    Meta
	Content any
}

// Service 将页面数据渲染为完整的 HTML 文档
type Service interface {
	RenderIndex(w io.Writer, data IndexPage) error
	RenderTag(w io.Writer, data TagPage) error
	RenderPost(w io.Writer, data PostPage) error
	RenderNotFound(w io.Writer) error
	RenderError(w io.Writer, message string) error
}

type serviceImpl struct {
	site  SiteInfo
	pages map[string]*template.Template
}

// NewService 解析全部内置模板，模板有误时返回错误
func NewService(site SiteInfo) (Service, error) {
	funcMap := template.FuncMap{
		"formatDate": FormatDate,
		"isoTime":    isoTime,
		"pathEscape": url.PathEscape,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS,
			"templates/layout.html", "templates/style.html", "templates/partials.html", file)
		if err != nil {
			return nil, fmt.Errorf("解析模板 %s 失败: %w", file, err)
		}
		pages[name] = tmpl
	}

	if site.Description == "" {
		site.Description = defaultDescription
	}
	return &serviceImpl{site: site, pages: pages}, nil
}

func (s *serviceImpl) RenderIndex(w io.Writer, data IndexPage) error {
	data.Nav = newNav(data.Page.CurrentPage, data.Page.TotalPages, data.Page.HasPrev, data.Page.HasNext, "/")
	return s.render(w, pageIndex, s.site.Name, Meta{
		Description:  s.site.Description,
		CanonicalURL: s.site.URL,
	}, data)
}

func (s *serviceImpl) RenderTag(w io.Writer, data TagPage) error {
	escaped := url.PathEscape(data.Tag)
	data.Nav = newNav(data.Page.CurrentPage, data.Page.TotalPages, data.Page.HasPrev, data.Page.HasNext, "/tag/"+escaped)
	return s.render(w, pageTag, "Posts tagged #"+data.Tag+" - "+s.site.Name, Meta{
		Description:  "All posts tagged with #" + data.Tag,
		CanonicalURL: s.canonical("/tag/" + escaped),
	}, data)
}

func (s *serviceImpl) RenderPost(w io.Writer, data PostPage) error {
	post := data.Post
	description := post.Excerpt
	if description == "" {
		description = s.site.Description
	}
	return s.render(w, pagePost, post.Description+" - "+s.site.Name, Meta{
		Description:   description,
		CanonicalURL:  s.canonical("/gist/" + url.PathEscape(post.ID)),
		OGType:        "article",
		PublishedTime: post.CreatedAt,
		ModifiedTime:  post.UpdatedAt,
		Tags:          post.Tags,
	}, data)
}

func (s *serviceImpl) RenderNotFound(w io.Writer) error {
	return s.render(w, pageNotFound, "404 - Not Found", Meta{Description: s.site.Description}, nil)
}

func (s *serviceImpl) RenderError(w io.Writer, message string) error {
	return s.render(w, pageError, "Error", Meta{Description: s.site.Description}, errorPage{Message: message})
}

// render 先写入缓冲区，模板执行失败时不会向 w 输出半个页面
func (s *serviceImpl) render(w io.Writer, page, title string, meta Meta, content any) error {
	tmpl, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("模板 %s 不存在", page)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", layoutData{
		Site:    s.site,
		Title:   title,
		Meta:    meta,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("渲染页面 %s 失败: %w", page, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

func (s *serviceImpl) canonical(path string) string {
	if s.site.URL == "" {
		return ""
	}
	return s.site.URL + path
}

func newNav(current, total int, hasPrev, hasNext bool, base string) Nav {
	return Nav{
		CurrentPage: current,
		TotalPages:  total,
		HasPrev:     hasPrev,
		HasNext:     hasNext,
		PrevURL:     base + "?page=" + strconv.Itoa(current-1),
		NextURL:     base + "?page=" + strconv.Itoa(current+1),
	}
}

// FormatDate 按 "Jan 2, 2006" 格式输出 UTC 日期，零值输出空字符串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
