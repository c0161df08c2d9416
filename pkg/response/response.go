/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-25 17:41:55
 * @LastEditTime: 2026-02-27 16:33:23
 * @LastEditors: 安知鱼
 */

// Package response 定义 JSON 接口的统一返回结构。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
