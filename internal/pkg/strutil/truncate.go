package strutil

import "unicode/utf8"

// Head 返回字符串的前 n 个字符（按 rune 计算，不会截断多字节字符）。
func Head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Len 返回字符串的字符数。
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
