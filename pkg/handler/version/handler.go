/*
 * @Description: 版本信息处理器
 * @Author: 安知鱼
 * @Date: 2026-02-17 08:13:33
 * @LastEditTime: 2026-02-28 12:44:34
 * @LastEditors: 安知鱼
 */
package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/response"
)

// Handler 版本信息处理器
type Handler struct{}

// NewHandler 创建版本信息处理器实例
func NewHandler() *Handler {
	return &Handler{}
}

// GetVersion 获取版本信息
func (h *Handler) GetVersion(c *gin.Context) {
	setNoCache(c)
	response.Success(c, version.GetBuildInfo(), "获取版本信息成功")
}

// GetVersionString 获取版本字符串
func (h *Handler) GetVersionString(c *gin.Context) {
	setNoCache(c)
	c.JSON(http.StatusOK, gin.H{
		"version": version.GetVersionString(),
	})
}

// 确保版本信息不被缓存
func setNoCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
