package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.GET("/api/posts", ok)
	r.OPTIONS("/api/posts", ok)
	return r
}

func request(r http.Handler, method, target, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if ip != "" {
		req.Header.Set("X-Real-IP", ip)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(60, 2))

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/", "203.0.113.1").Code)

	w := request(r, http.MethodGet, "/", "203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// 其他 IP 不受影响
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/", "203.0.113.2").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(RateLimit(0, 0))

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/", "203.0.113.1").Code)
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	l := newIPRateLimiter(10, 0)
	assert.Equal(t, 10, l.burst, "burst 默认等于每分钟请求数")

	l.getLimiter("a")
	l.getLimiter("b")
	assert.Equal(t, 2, l.size())

	assert.Equal(t, 0, l.cleanupStaleEntries(time.Now()))
	assert.Equal(t, 2, l.cleanupStaleEntries(time.Now().Add(11*time.Minute)))
	assert.Equal(t, 0, l.size())
}

func TestCors(t *testing.T) {
	r := newEngine(Cors())

	w := request(r, http.MethodOptions, "/api/posts", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = request(r, http.MethodGet, "/", "")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), "页面路由不加 CORS 头部")
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())

	w := request(r, http.MethodGet, "/", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
