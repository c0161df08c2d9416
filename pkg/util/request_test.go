package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(headers map[string]string, remoteAddr string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("GET", "http://blog.test/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	c.Request = req
	return c
}

func TestGetRealClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "X-Forwarded-For 取第一个", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, want: "203.0.113.5"},
		{name: "X-Real-IP", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "198.51.100.7"},
		{name: "无效头部被忽略", headers: map[string]string{"X-Forwarded-For": "unknown", "CF-Connecting-IP": "192.0.2.3"}, want: "192.0.2.3"},
		{name: "回退到 RemoteAddr", remoteAddr: "192.0.2.9:4321", want: "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(tt.headers, tt.remoteAddr)
			assert.Equal(t, tt.want, GetRealClientIP(c))
		})
	}
}

func TestGetSiteURL(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		headers    map[string]string
		want       string
	}{
		{name: "使用配置并去掉结尾斜杠", configured: "https://example.com/", want: "https://example.com"},
		{name: "由请求推断", want: "http://blog.test"},
		{name: "识别 X-Forwarded-Proto", headers: map[string]string{"X-Forwarded-Proto": "https"}, want: "https://blog.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(tt.headers, "")
			assert.Equal(t, tt.want, GetSiteURL(c, tt.configured))
		})
	}
}
