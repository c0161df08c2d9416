/*
 * @Description: HTML 转义
 * @Author: 安知鱼
 * @Date: 2026-03-21 22:18:45
 * @LastEditTime: 2026-03-24 19:01:29
 * @LastEditors: 安知鱼
 */
package strutil

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML 转义 HTML 中的五个保留字符。
// & 必须最先处理，strings.Replacer 是单遍扫描，不会重复转义已生成的实体。
func EscapeHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}
