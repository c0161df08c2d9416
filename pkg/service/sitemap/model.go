/*
 * @Description: 站点地图数据结构
 * @Author: 安知鱼
 * @Date: 2026-03-15 20:47:05
 * @LastEditTime: 2026-03-16 13:08:01
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"encoding/xml"
	"fmt"
	"time"
)

// URLSet 站点地图根元素
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL 站点地图URL条目
type URL struct {
	Location     string `xml:"loc"`
	LastModified string `xml:"lastmod,omitempty"`
	ChangeFreq   string `xml:"changefreq,omitempty"`
	Priority     string `xml:"priority,omitempty"`
}

// ChangeFrequency 更新频率枚举
type ChangeFrequency string

const (
	ChangeFreqDaily   ChangeFrequency = "daily"
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
)

// SitemapItem 站点地图条目
type SitemapItem struct {
	URL          string
	LastModified time.Time
	ChangeFreq   ChangeFrequency
	Priority     float32
}

// ToURL 转换为URL结构，时间统一为 UTC
func (s *SitemapItem) ToURL() URL {
	return URL{
		Location:     s.URL,
		LastModified: s.LastModified.UTC().Format(time.RFC3339),
		ChangeFreq:   string(s.ChangeFreq),
		Priority:     fmt.Sprintf("%.1f", s.Priority),
	}
}
