/*
 * @Description: GitHub gist 原始数据模型
 * @Author: 安知鱼
 * @Date: 2026-02-14 19:39:36
 * @LastEditTime: 2026-02-24 12:44:54
 * @LastEditors: 安知鱼
 */
package model

import (
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GistFile 是 gist 中的单个文件
type GistFile struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
	RawURL   string `json:"raw_url,omitempty"`
}

// GistRecord 是 GitHub 返回的 gist 原始记录。
// Files 保留了响应中文件出现的顺序，"第一个文件"即按此顺序取得。
type GistRecord struct {
	ID          string                                  `json:"id"`
	Description string                                  `json:"description"`
	Files       *orderedmap.OrderedMap[string, GistFile] `json:"files"`
	CreatedAt   time.Time                               `json:"created_at"`
	UpdatedAt   time.Time                               `json:"updated_at"`
	HTMLURL     string                                  `json:"html_url"`
	Public      bool                                    `json:"public"`
}

// FirstFile 返回按源顺序的第一个文件，没有文件时返回零值和 false
func (g GistRecord) FirstFile() (GistFile, bool) {
	if g.Files == nil {
		return GistFile{}, false
	}
	pair := g.Files.Oldest()
	if pair == nil {
		return GistFile{}, false
	}
	file := pair.Value
	if file.Filename == "" {
		file.Filename = pair.Key
	}
	return file, true
}
