/*
 * @Description: RSS Feed 服务
 * @Author: 安知鱼
 * @Date: 2026-03-26 10:53:42
 * @LastEditTime: 2026-03-26 20:50:45
 * @LastEditors: 安知鱼
 */

// Package rss 生成最新文章的 RSS 2.0 feed。
package rss

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// DefaultItemCount 是 feed 中默认的文章数量
const DefaultItemCount = 20

// Service RSS 服务接口
type Service interface {
	// GenerateFeed 生成 RSS feed
	GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error)
	// GenerateXML 生成 RSS XML 字符串
	GenerateXML(feed *RSSFeed) string
}

type service struct {
	postSvc gist.Service
	site    SiteInfo
}

// NewService 创建 RSS 服务
func NewService(postSvc gist.Service, site SiteInfo) Service {
	return &service{postSvc: postSvc, site: site}
}

// GenerateFeed 取最新的 ItemCount 篇文章生成 feed
func (s *service) GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error) {
	if opts.ItemCount <= 0 {
		opts.ItemCount = DefaultItemCount
	}
	if opts.BuildTime.IsZero() {
		opts.BuildTime = time.Now()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	posts, err := s.postSvc.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}
	if len(posts) > opts.ItemCount {
		posts = posts[:opts.ItemCount]
	}

	feed := &RSSFeed{
		Title:         s.site.Name,
		Link:          baseURL,
		Description:   s.site.Description,
		LastBuildDate: httpDate(opts.BuildTime),
		Items:         make([]RSSItem, 0, len(posts)),
	}
	for i := range posts {
		feed.Items = append(feed.Items, buildRSSItem(&posts[i], baseURL))
	}

	return feed, nil
}

func buildRSSItem(post *model.Post, baseURL string) RSSItem {
	link := fmt.Sprintf("%s/gist/%s", baseURL, post.ID)
	return RSSItem{
		Title:       post.Description,
		Link:        link,
		Description: strutil.EscapeHTML(post.Excerpt),
		PubDate:     httpDate(post.CreatedAt),
		GUID:        link,
		Categories:  post.Tags,
	}
}

// httpDate 格式化为 RFC 1123 的 GMT 时间
func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// GenerateXML 生成 RSS XML 字符串
func (s *service) GenerateXML(feed *RSSFeed) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	sb.WriteString("\n")

	sb.WriteString("  <channel>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(feed.Title)))
	sb.WriteString(fmt.Sprintf("    <link>%s</link>\n", xmlEscape(feed.Link)))
	sb.WriteString(fmt.Sprintf("    <description>%s</description>\n", xmlEscape(feed.Description)))
	sb.WriteString(fmt.Sprintf("    <atom:link href=\"%s/rss.xml\" rel=\"self\" type=\"application/rss+xml\"/>\n", xmlEscape(feed.Link)))
	sb.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", feed.LastBuildDate))

	for _, item := range feed.Items {
		sb.WriteString("    <item>\n")
		sb.WriteString(fmt.Sprintf("      <title>%s</title>\n", xmlEscape(item.Title)))
		sb.WriteString(fmt.Sprintf("      <link>%s</link>\n", xmlEscape(item.Link)))
		sb.WriteString(fmt.Sprintf("      <guid isPermaLink=\"true\">%s</guid>\n", xmlEscape(item.GUID)))
		// 描述已做 HTML 转义，内容中不会出现 "]]>"
		sb.WriteString(fmt.Sprintf("      <description><![CDATA[%s]]></description>\n", item.Description))
		sb.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PubDate))
		for _, category := range item.Categories {
			sb.WriteString(fmt.Sprintf("      <category>%s</category>\n", xmlEscape(category)))
		}
		sb.WriteString("    </item>\n")
	}

	sb.WriteString("  </channel>\n")
	sb.WriteString("</rss>")

	return sb.String()
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// xmlEscape 转义 XML 特殊字符
func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
