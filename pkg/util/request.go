/*
 * @Description: HTTP 请求辅助函数
 * @Author: 安知鱼
 * @Date: 2026-02-25 12:11:09
 * @LastEditTime: 2026-02-28 11:35:03
 * @LastEditors: 安知鱼
 */

// Package util 提供处理 HTTP 请求的辅助函数。
package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIPHeaders 按优先级排列的代理头部
var clientIPHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
}

// GetRealClientIP 获取客户端真实IP地址
// 优先级：X-Forwarded-For > X-Real-IP > CF-Connecting-IP > RemoteAddr
func GetRealClientIP(c *gin.Context) string {
	for _, header := range clientIPHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For 格式为 client, proxy1, proxy2，取第一个
		candidate := strings.TrimSpace(strings.Split(value, ",")[0])
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	if ip, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return ip
	}
	return c.Request.RemoteAddr
}

// GetSiteURL 返回不带结尾斜杠的站点地址。
// 配置了站点地址时直接使用，否则由请求的协议和 Host 推断。
func GetSiteURL(c *gin.Context, configured string) string {
	if configured = strings.TrimRight(strings.TrimSpace(configured), "/"); configured != "" {
		return configured
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
