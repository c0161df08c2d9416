/*
 * @Description: 渲染结果缓存
 * @Author: 安知鱼
 * @Date: 2026-03-15 19:23:05
 * @LastEditTime: 2026-03-16 11:14:30
 * @LastEditors: 安知鱼
 */
package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// 缓存配置常量
const (
	// 缓存容量：最多缓存 500 条渲染结果
	cacheCapacity = 500
	// 缓存 TTL：30 分钟
	cacheTTL = 30 * time.Minute
)

// htmlCache 是线程安全、带过期时间的 LRU 缓存
type htmlCache struct {
	lru *expirable.LRU[string, string]
}

func newHTMLCache(capacity int, ttl time.Duration) *htmlCache {
	return &htmlCache{lru: expirable.NewLRU[string, string](capacity, nil, ttl)}
}

func (c *htmlCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *htmlCache) Set(key, value string) {
	c.lru.Add(key, value)
}

func (c *htmlCache) Clear() {
	c.lru.Purge()
}

func (c *htmlCache) Size() int {
	return c.lru.Len()
}

// computeCacheKey 使用 SHA256 计算缓存键，引擎名参与计算
func computeCacheKey(engine Engine, content string) string {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
