/*
 * @Description: 按客户端 IP 的令牌桶限流中间件
 * @Author: 安知鱼
 * @Date: 2026-02-18 11:36:19
 * @LastEditTime: 2026-02-28 13:06:37
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/response"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/util"
)

// ipRateLimiter 用于存储每个IP地址的限流器
type ipRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	// 每个IP每分钟允许的请求数
	requestsPerMinute int
	// 突发请求数（允许短时间内的突发流量）
	burst int
	// 超过该时长未访问的限流器会被清理
	idleTimeout time.Duration
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// newIPRateLimiter 创建一个新的IP限流器，burst 不为正数时等于 requestsPerMinute
func newIPRateLimiter(requestsPerMinute, burst int) *ipRateLimiter {
	if burst <= 0 {
		burst = requestsPerMinute
	}
	return &ipRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		idleTimeout:       10 * time.Minute,
	}
}

// getLimiter 获取指定IP的限流器
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := time.Now()
	info, exists := i.limiters[ip]
	if !exists {
		// 每分钟补充 requestsPerMinute 个令牌
		limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(i.requestsPerMinute)), i.burst)
		info = &limiterInfo{limiter: limiter}
		i.limiters[ip] = info
	}
	info.lastAccessed = now

	return info.limiter
}

// cleanupStaleEntries 清理超过 idleTimeout 未使用的限流器，返回清理数量
func (i *ipRateLimiter) cleanupStaleEntries(now time.Time) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	for ip, info := range i.limiters {
		if now.Sub(info.lastAccessed) > i.idleTimeout {
			delete(i.limiters, ip)
			removed++
		}
	}
	return removed
}

func (i *ipRateLimiter) size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.limiters)
}

// RateLimit 创建按客户端IP限流的中间件。
// requestsPerMinute 不为正数时不限流。
func RateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	if requestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(requestsPerMinute, burst)

	// 启动定期清理协程
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.cleanupStaleEntries(now)
		}
	}()

	return func(c *gin.Context) {
		ip := util.GetRealClientIP(c)

		if !limiter.getLimiter(ip).Allow() {
			c.Header("Retry-After", "60")
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
