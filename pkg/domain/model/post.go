/*
 * @Description: 文章模型
 * @Author: 安知鱼
 * @Date: 2026-02-15 20:25:25
 * @LastEditTime: 2026-02-27 11:30:40
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Post 是 gist 规范化之后的博客文章
type Post struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"content"`
	Filename    string    `json:"filename"`
	Excerpt     string    `json:"excerpt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
	Public      bool      `json:"public"`
}

// HasTag 判断文章是否带有指定标签，区分大小写
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PostSummary 是列表接口返回的文章摘要，不含正文
type PostSummary struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Filename    string    `json:"filename"`
	Excerpt     string    `json:"excerpt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}

// Summary 去掉正文
func (p Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Description: p.Description,
		Tags:        p.Tags,
		Filename:    p.Filename,
		Excerpt:     p.Excerpt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		URL:         p.URL,
	}
}

// TagCount 是标签及其出现次数
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
