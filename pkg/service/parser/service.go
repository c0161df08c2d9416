/*
 * @Description: Markdown 渲染服务
 * @Author: 安知鱼
 * @Date: 2026-02-11 14:30:39
 * @LastEditTime: 2026-02-28 08:30:58
 * @LastEditors: 安知鱼
 */

// Package parser 选择 Markdown 渲染引擎并缓存渲染结果。
package parser

import (
	"log"
	"path"
	"strings"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
)

// Engine 是 Markdown 渲染引擎名
type Engine string

const (
	EngineBuiltin  Engine = "builtin"
	EngineGoldmark Engine = "goldmark"
)

// Service 将文章内容转换为 HTML
type Service struct {
	engine   Engine
	renderer parser.Renderer
	cache    *htmlCache
}

// NewService 按引擎名创建渲染服务，未知的引擎名使用内置渲染器
func NewService(engine string) *Service {
	e := Engine(strings.ToLower(strings.TrimSpace(engine)))

	var renderer parser.Renderer
	switch e {
	case EngineGoldmark:
		renderer = parser.NewGoldmark()
	default:
		if e != "" && e != EngineBuiltin {
			log.Printf("警告: 未知的 Markdown 引擎 '%s'，使用内置渲染器", engine)
		}
		e = EngineBuiltin
		renderer = parser.NewMarkdown()
	}

	return &Service{
		engine:   e,
		renderer: renderer,
		cache:    newHTMLCache(cacheCapacity, cacheTTL),
	}
}

// Engine 返回实际使用的引擎
func (s *Service) Engine() Engine {
	return s.engine
}

// ToHTML 渲染 Markdown，相同内容直接返回缓存
func (s *Service) ToHTML(content string) string {
	key := computeCacheKey(s.engine, content)
	if cached, hit := s.cache.Get(key); hit {
		return cached
	}

	html := s.renderer.Render(content)
	s.cache.Set(key, html)
	return html
}

// RenderFile 按文件名决定渲染方式：.md 与 .markdown 渲染为 Markdown，
// 其他文件作为转义后的代码块原样展示
func (s *Service) RenderFile(filename, content string) string {
	if IsMarkdownFile(filename) {
		return s.ToHTML(content)
	}
	return "<pre><code>" + strutil.EscapeHTML(content) + "</code></pre>"
}

// ClearCache 清空渲染缓存
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// IsMarkdownFile 判断文件是否为 Markdown
func IsMarkdownFile(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
