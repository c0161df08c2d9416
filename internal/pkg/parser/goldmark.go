// internal/pkg/parser/goldmark.go
package parser

import (
	"bytes"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
)

// Goldmark 使用 goldmark 完整解析 CommonMark/GFM，
// 输出再经过 bluemonday 的 UGC 策略过滤。
type Goldmark struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewGoldmark 创建 goldmark 渲染器
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, extension.Footnote, extension.Typographer,
			extension.Strikethrough, extension.Table, extension.TaskList,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	policy.AllowAttrs("target").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Goldmark{md: md, policy: policy}
}

// Render 实现 Renderer 接口。goldmark 转换失败时退回到转义后的纯文本。
func (g *Goldmark) Render(src string) string {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		log.Printf("goldmark 转换失败，退回纯文本输出: %v", err)
		return "<pre>" + strutil.EscapeHTML(src) + "</pre>"
	}
	return g.policy.Sanitize(buf.String())
}
