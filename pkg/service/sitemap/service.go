/*
 * @Description: 站点地图服务
 * @Author: 安知鱼
 * @Date: 2026-02-19 22:51:41
 * @LastEditTime: 2026-02-23 23:42:59
 * @LastEditors: 安知鱼
 */

// Package sitemap 生成 sitemap.xml 与 robots.txt。
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

const sitemapXmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Service 站点地图服务接口
type Service interface {
	// GenerateSitemap 生成站点地图
	GenerateSitemap(ctx context.Context, baseURL string) (*URLSet, error)
	// GenerateXML 将站点地图序列化为带声明的 XML
	GenerateXML(urlset *URLSet) ([]byte, error)
	// GenerateRobots 生成robots.txt
	GenerateRobots(baseURL string) string
}

type service struct {
	postSvc gist.Service
	now     func() time.Time
}

// NewService 创建站点地图服务
func NewService(postSvc gist.Service) Service {
	return &service{postSvc: postSvc, now: time.Now}
}

// GenerateSitemap 依次加入主页、每篇文章和每个标签页
func (s *service) GenerateSitemap(ctx context.Context, baseURL string) (*URLSet, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	posts, err := s.postSvc.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}
	now := s.now()

	items := make([]SitemapItem, 0, len(posts)+1)
	items = append(items, SitemapItem{
		URL:          baseURL + "/",
		LastModified: now,
		ChangeFreq:   ChangeFreqDaily,
		Priority:     1.0,
	})

	for _, post := range posts {
		items = append(items, SitemapItem{
			URL:          fmt.Sprintf("%s/gist/%s", baseURL, post.ID),
			LastModified: post.UpdatedAt,
			ChangeFreq:   ChangeFreqMonthly,
			Priority:     0.8,
		})
	}

	for _, tag := range gist.AllTags(posts) {
		items = append(items, SitemapItem{
			URL:          fmt.Sprintf("%s/tag/%s", baseURL, url.PathEscape(tag)),
			LastModified: now,
			ChangeFreq:   ChangeFreqWeekly,
			Priority:     0.6,
		})
	}

	urlset := &URLSet{
		Xmlns: sitemapXmlns,
		URLs:  make([]URL, len(items)),
	}
	for i, item := range items {
		urlset.URLs[i] = item.ToURL()
	}

	return urlset, nil
}

func (s *service) GenerateXML(urlset *URLSet) ([]byte, error) {
	body, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化站点地图失败: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// GenerateRobots 生成robots.txt
func (s *service) GenerateRobots(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	return fmt.Sprintf(`User-agent: *
Allow: /

# 禁止抓取 JSON 接口
Disallow: /api/

# 站点地图
Sitemap: %s/sitemap.xml
`, baseURL)
}
