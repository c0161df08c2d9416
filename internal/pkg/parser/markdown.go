// internal/pkg/parser/markdown.go
package parser

import (
	"strconv"
	"strings"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
)

// 占位符使用 Unicode 私有区字符作为边界，不含任何 HTML 保留字符，
// 也不含任何 Markdown 语法字符，因此后续的转义和改写都不会触碰它。
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
	fenceMark        = "F"
	inlineMark       = "C"
	linkMark         = "L"
)

// Renderer 将原始文本转换为 HTML 片段。
type Renderer interface {
	Render(src string) string
}

// Markdown 是内置的轻量 Markdown 渲染器。
// 它只覆盖常用语法，对任何输入都返回结果，不会 panic。
type Markdown struct{}

// NewMarkdown 创建内置渲染器
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Render 实现 Renderer 接口
func (m *Markdown) Render(src string) string {
	return Render(src)
}

// Render 将 Markdown 文本转换为 HTML 片段。
//
// 处理顺序：
//  1. 提取围栏代码块，替换为占位符
//  2. 提取行内代码，替换为占位符
//  3. 对剩余文本整体做 HTML 转义
//  4. 逐行分类并改写块级/行内语法
//  5. 按段落状态机重组
//  6. 还原占位符
func Render(src string) string {
	if src == "" {
		return ""
	}

	text := strings.ReplaceAll(src, "\r\n", "\n")
	text = strings.NewReplacer(placeholderOpen, "", placeholderClose, "").Replace(text)

	restore := make([]string, 0, 8)

	fenceCount := 0
	text = extractFences(text, func(html string) string {
		token := placeholder(fenceMark, fenceCount)
		fenceCount++
		restore = append(restore, token, html)
		return token
	})

	inlineCount := 0
	text = extractInlineCode(text, func(html string) string {
		token := placeholder(inlineMark, inlineCount)
		inlineCount++
		restore = append(restore, token, html)
		return token
	})

	text = strutil.EscapeHTML(text)

	lines := classifyLines(strings.Split(text, "\n"))
	html := assembleParagraphs(lines)

	if len(restore) == 0 {
		return html
	}
	return strings.NewReplacer(restore...).Replace(html)
}

func placeholder(kind string, index int) string {
	return placeholderOpen + kind + strconv.Itoa(index) + placeholderClose
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// extractFences 从左到右扫描行首的 ``` 开始标记，与其后最近的 ``` 配对。
// 未闭合的开始标记保留为普通文本。
func extractFences(text string, save func(html string) string) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		lineStart := i == 0 || text[i-1] == '\n'
		if lineStart && strings.HasPrefix(text[i:], "```") {
			langEnd := i + 3
			for langEnd < len(text) && isWordByte(text[langEnd]) {
				langEnd++
			}
			lang := strings.ToLower(text[i+3 : langEnd])

			bodyStart := langEnd
			if bodyStart < len(text) && text[bodyStart] == '\n' {
				bodyStart++
			}

			if end := strings.Index(text[bodyStart:], "```"); end >= 0 {
				code := text[bodyStart : bodyStart+end]
				b.WriteString(save(renderFence(lang, code)))
				i = bodyStart + end + 3
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func renderFence(lang, code string) string {
	class := ""
	if lang != "" {
		class = ` class="language-` + lang + `"`
	}
	return "<pre><code" + class + ">" + strutil.EscapeHTML(strings.TrimSpace(code)) + "</code></pre>"
}

// extractInlineCode 处理单反引号包裹的行内代码，配对不跨行。
func extractInlineCode(text string, save func(html string) string) string {
	if !strings.Contains(text, "`") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] == '`' {
			rest := text[i+1:]
			end := strings.IndexAny(rest, "`\n")
			if end > 0 && rest[end] == '`' {
				b.WriteString(save("<code>" + strutil.EscapeHTML(rest[:end]) + "</code>"))
				i += end + 2
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// mdLine 是块级分类之后的一行
type mdLine struct {
	html  string
	block bool
	blank bool
	// opens/closes 标记多行容器（列表）的开启与关闭
	opens  bool
	closes bool
}

// classifyLines 对已转义的文本逐行分类。
// 每一行只被改写一次，已生成的 HTML 不会再被后续规则处理。
func classifyLines(raw []string) []mdLine {
	lines := make([]mdLine, 0, len(raw))
	listStart := -1

	closeList := func() {
		if listStart < 0 {
			return
		}
		first := &lines[listStart]
		first.html = "<ul>" + first.html
		first.opens = true
		last := &lines[len(lines)-1]
		last.html += "</ul>"
		last.closes = true
		listStart = -1
	}

	for _, line := range splitFenceLines(raw) {
		if item, ok := listItem(line); ok {
			if listStart < 0 {
				listStart = len(lines)
			}
			lines = append(lines, mdLine{html: "<li>" + renderInline(item) + "</li>", block: true})
			continue
		}
		closeList()

		switch {
		case strings.TrimSpace(line) == "":
			lines = append(lines, mdLine{html: line, blank: true})
		case strings.HasPrefix(line, placeholderOpen+fenceMark):
			lines = append(lines, mdLine{html: line, block: true})
		case line == "---" || line == "***":
			lines = append(lines, mdLine{html: "<hr>", block: true})
		default:
			if level, content, ok := heading(line); ok {
				tag := "h" + strconv.Itoa(level)
				lines = append(lines, mdLine{html: "<" + tag + ">" + renderInline(content) + "</" + tag + ">", block: true})
				continue
			}
			if quote, ok := strings.CutPrefix(line, "&gt; "); ok && quote != "" {
				lines = append(lines, mdLine{html: "<blockquote>" + renderInline(quote) + "</blockquote>", block: true})
				continue
			}
			lines = append(lines, mdLine{html: renderInline(line)})
		}
	}
	closeList()

	return lines
}

// splitFenceLines 把代码块占位符之后同一行的文本拆成独立的一行，
// 使其按普通文本参与分类和行内改写。
func splitFenceLines(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.HasPrefix(line, placeholderOpen+fenceMark) {
			end := strings.Index(line, placeholderClose) + len(placeholderClose)
			if rest := strings.TrimLeft(line[end:], " \t"); rest != "" {
				out = append(out, line[:end], rest)
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// heading 从最深的层级开始识别 1-6 级标题
func heading(line string) (int, string, bool) {
	for level := 6; level >= 1; level-- {
		marker := strings.Repeat("#", level) + " "
		if content, ok := strings.CutPrefix(line, marker); ok && content != "" {
			return level, content, true
		}
	}
	return 0, "", false
}

// listItem 识别 "* "、"- " 和 "1. " 开头的列表项。
// 有序与无序列表统一渲染为 <ul>。
func listItem(line string) (string, bool) {
	for _, marker := range []string{"* ", "- "} {
		if item, ok := strings.CutPrefix(line, marker); ok && item != "" {
			return item, true
		}
	}

	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		if item, ok := strings.CutPrefix(line[digits:], ". "); ok && item != "" {
			return item, true
		}
	}
	return "", false
}

// 强调按宽度分轮处理：先配对最宽的分隔符，再处理更窄的。
// 每一轮都在整行上进行，较宽的分隔符因此不会被较窄的拆开。
var emphasisDelims = []string{"***", "**", "*", "___", "__", "_"}

// renderInline 处理一行文本中的图片、链接与强调。
// 图片和链接先替换为占位符，URL 中的 * 和 _ 因此不会参与强调配对。
func renderInline(s string) string {
	if !strings.ContainsAny(s, "*_[") {
		return s
	}

	s, spans := extractSpans(s)
	for _, delim := range emphasisDelims {
		s = replaceEmphasis(s, delim)
	}

	if len(spans) == 0 {
		return s
	}
	return strings.NewReplacer(spans...).Replace(s)
}

// extractSpans 单遍扫描图片与链接，返回替换后的文本和还原表
func extractSpans(s string) (string, []string) {
	if !strings.Contains(s, "[") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	var spans []string

	save := func(html string) {
		token := placeholder(linkMark, len(spans)/2)
		spans = append(spans, token, html)
		b.WriteString(token)
	}

	for i := 0; i < len(s); {
		switch s[i] {
		case '!':
			if html, n, ok := parseImage(s[i:]); ok {
				save(html)
				i += n
				continue
			}
		case '[':
			if html, n, ok := parseLink(s[i:]); ok {
				save(html)
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), spans
}

// replaceEmphasis 把成对的 delim 替换为对应标签。
// 取最左的开始标记与其后最近的闭合标记（非贪婪），内容至少一个字符。
func replaceEmphasis(s, delim string) string {
	if !strings.Contains(s, delim) {
		return s
	}
	openTag, closeTag := emphasisTags(len(delim))

	var b strings.Builder
	b.Grow(len(s) + 16)

	for {
		start := strings.Index(s, delim)
		if start < 0 {
			break
		}
		rest := s[start+len(delim):]
		if rest == "" {
			break
		}
		end := strings.Index(rest[1:], delim)
		if end < 0 {
			break
		}
		inner := rest[:end+1]

		b.WriteString(s[:start])
		b.WriteString(openTag)
		b.WriteString(inner)
		b.WriteString(closeTag)
		s = rest[end+1+len(delim):]
	}
	b.WriteString(s)
	return b.String()
}

func emphasisTags(width int) (string, string) {
	switch width {
	case 3:
		return "<strong><em>", "</em></strong>"
	case 2:
		return "<strong>", "</strong>"
	default:
		return "<em>", "</em>"
	}
}

// parseLink 解析 [text](url)
func parseLink(s string) (string, int, bool) {
	text, url, n, ok := bracketTarget(s[1:], false)
	if !ok {
		return "", 0, false
	}
	return `<a href="` + safeURL(url) + `" target="_blank" rel="noopener">` + renderInline(text) + "</a>", n + 1, true
}

// parseImage 解析 ![alt](url)，alt 可以为空
func parseImage(s string) (string, int, bool) {
	if len(s) < 2 || s[1] != '[' {
		return "", 0, false
	}
	alt, url, n, ok := bracketTarget(s[2:], true)
	if !ok {
		return "", 0, false
	}
	return `<img src="` + safeURL(url) + `" alt="` + alt + `" />`, n + 2, true
}

// bracketTarget 解析 "text](url)"，返回文本、地址与消耗的字节数
func bracketTarget(s string, allowEmptyText bool) (string, string, int, bool) {
	closeBracket := strings.IndexByte(s, ']')
	if closeBracket < 0 || (closeBracket == 0 && !allowEmptyText) {
		return "", "", 0, false
	}
	if closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	urlStart := closeBracket + 2
	closeParen := strings.IndexByte(s[urlStart:], ')')
	if closeParen <= 0 {
		return "", "", 0, false
	}
	return s[:closeBracket], s[urlStart : urlStart+closeParen], urlStart + closeParen + 1, true
}

// safeURL 拒绝可执行脚本的协议。url 此时已经过 HTML 转义。
func safeURL(url string) string {
	normalized := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(url))

	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(normalized, scheme) {
			return "#"
		}
	}
	return url
}

// assembleParagraphs 用一个“处于多行块内”的标记和一个段落缓冲区重组输出。
func assembleParagraphs(lines []mdLine) string {
	out := make([]string, 0, len(lines))
	var paragraph []string
	inBlock := false

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		out = append(out, "<p>"+strings.Join(paragraph, "\n")+"</p>")
		paragraph = paragraph[:0]
	}

	for _, line := range lines {
		switch {
		case line.block:
			flush()
			out = append(out, line.html)
			if line.opens && !line.closes {
				inBlock = true
			} else if line.closes {
				inBlock = false
			}
		case line.blank:
			flush()
		case inBlock:
			out = append(out, line.html)
		default:
			paragraph = append(paragraph, line.html)
		}
	}
	flush()

	return strings.Join(out, "\n")
}
