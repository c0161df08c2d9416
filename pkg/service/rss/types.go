/*
 * @Description: RSS 数据结构
 * @Author: 安知鱼
 * @Date: 2026-02-16 13:27:50
 * @LastEditTime: 2026-02-28 18:05:51
 * @LastEditors: 安知鱼
 */
package rss

import "time"

// RSSItem RSS 条目结构
type RSSItem struct {
	Title       string
	Link        string
	Description string
	PubDate     string
	GUID        string
	Categories  []string
}

// RSSFeed RSS Feed 结构
type RSSFeed struct {
	Title         string
	Link          string
	Description   string
	LastBuildDate string
	Items         []RSSItem
}

// RSSOptions RSS 生成选项
type RSSOptions struct {
	// ItemCount 返回的文章数量
	ItemCount int
	// BaseURL 站点基础 URL，不带结尾斜杠
	BaseURL string
	// BuildTime Feed 构建时间
	BuildTime time.Time
}

// SiteInfo 是频道级别的站点信息
type SiteInfo struct {
	Name        string
	Description string
}
