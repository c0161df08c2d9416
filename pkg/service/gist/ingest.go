/*
 * @Description: gist 规范化：标签、摘要、发布筛选
 * @Author: 安知鱼
 * @Date: 2026-02-26 15:52:25
 * @LastEditTime: 2026-02-28 14:33:31
 * @LastEditors: 安知鱼
 */
package gist

import (
	"regexp"
	"sort"
	"strings"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
)

const (
	// ExcerptLength 是摘要截取的字符数
	ExcerptLength = 200
	// UntitledDescription 是描述为空时的标题
	UntitledDescription = "Untitled"
)

var (
	tagPattern         = regexp.MustCompile(`#(\w+)`)
	headerLinePattern  = regexp.MustCompile(`(?m)^#.*$`)
	fencedBlockPattern = regexp.MustCompile("(?s)```.*?```")
	newlineRunPattern  = regexp.MustCompile(`\n+`)
)

// ExtractTags 返回描述中所有 #标签，以及去掉标签后的描述
func ExtractTags(description string) ([]string, string) {
	matches := tagPattern.FindAllStringSubmatch(description, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}

	cleaned := strings.TrimSpace(tagPattern.ReplaceAllString(description, ""))
	if cleaned == "" {
		cleaned = UntitledDescription
	}
	return tags, cleaned
}

// BuildExcerpt 去掉标题行与围栏代码块，把换行折叠为空格，截取前 200 个字符。
// 截取结果恰好为 200 个字符时追加 "..."。
func BuildExcerpt(content string) string {
	text := headerLinePattern.ReplaceAllString(content, "")
	text = fencedBlockPattern.ReplaceAllString(text, "")
	text = newlineRunPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	excerpt := strutil.Head(text, ExcerptLength)
	if strutil.Len(excerpt) == ExcerptLength {
		excerpt += "..."
	}
	return excerpt
}

// Normalize 将 gist 原始记录转换为文章，缺失的字段取零值
func Normalize(raw model.GistRecord) model.Post {
	tags, description := ExtractTags(raw.Description)
	file, _ := raw.FirstFile()

	return model.Post{
		ID:          raw.ID,
		Description: description,
		Tags:        tags,
		Content:     file.Content,
		Filename:    file.Filename,
		Excerpt:     BuildExcerpt(file.Content),
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		URL:         raw.HTMLURL,
		Public:      raw.Public,
	}
}

// Publish 保留公开且至少有一个标签的文章，按创建时间倒序（稳定排序）
func Publish(posts []model.Post) []model.Post {
	published := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Public && len(p.Tags) > 0 {
			published = append(published, p)
		}
	}

	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	return published
}

// TagCounts 统计标签出现次数，按次数倒序，次数相同按首次出现顺序
func TagCounts(posts []model.Post) []model.TagCount {
	index := make(map[string]int)
	var counts []model.TagCount

	for _, p := range posts {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, model.TagCount{Name: tag, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// AllTags 返回去重后的标签名，顺序同 TagCounts
func AllTags(posts []model.Post) []string {
	counts := TagCounts(posts)
	tags := make([]string, len(counts))
	for i, c := range counts {
		tags[i] = c.Name
	}
	return tags
}
