/*
 * @Description: 带时间戳的读穿缓存
 * @Author: 安知鱼
 * @Date: 2026-02-12 15:34:34
 * @LastEditTime: 2026-02-28 18:40:14
 * @LastEditors: 安知鱼
 */

// Package cache 在 CacheService 之上提供带时间戳的读穿缓存。
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/utility"
)

// Layer 包装一个可选的缓存存储。store 为 nil 时所有读写直接穿透。
type Layer struct {
	store utility.CacheService
	now   func() time.Time
}

// NewLayer 创建缓存层，store 可以为 nil
func NewLayer(store utility.CacheService) *Layer {
	return &Layer{store: store, now: time.Now}
}

// WithClock 替换时间来源，返回同一个 Layer
func (l *Layer) WithClock(now func() time.Time) *Layer {
	l.now = now
	return l
}

// Enabled 报告是否配置了缓存存储
func (l *Layer) Enabled() bool {
	return l != nil && l.store != nil
}

// Remember 返回 key 对应的新鲜数据；不存在或已过期时调用 producer 并写回。
// 条目在 now - timestamp > ttl 时视为过期。producer 的错误原样返回且不写入缓存。
// 并发的未命中各自调用 producer，最后一次写入生效。
func Remember[T any](ctx context.Context, l *Layer, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	if !l.Enabled() || ttl <= 0 {
		return producer(ctx)
	}

	if entry, ok := l.load(ctx, key); ok && l.fresh(entry, ttl) {
		var value T
		err := json.Unmarshal(entry.Payload, &value)
		if err == nil {
			return value, nil
		}
		log.Printf("警告: 缓存 '%s' 的数据无法解析，将重新获取: %v", key, err)
	}

	value, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	Store(ctx, l, key, ttl, value)
	return value, nil
}

// Store 无条件写入 key，时间戳为当前时间。写入失败只记录日志。
func Store[T any](ctx context.Context, l *Layer, key string, ttl time.Duration, value T) {
	if !l.Enabled() {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("警告: 序列化缓存 '%s' 失败: %v", key, err)
		return
	}

	raw, err := json.Marshal(model.CacheEntry{Timestamp: l.now().UnixMilli(), Payload: payload})
	if err != nil {
		log.Printf("警告: 序列化缓存条目 '%s' 失败: %v", key, err)
		return
	}

	// 存储层的过期时间只用于回收空间，新鲜度以时间戳为准
	if err := l.store.Set(ctx, key, string(raw), 2*ttl); err != nil {
		log.Printf("警告: 写入缓存 '%s' 失败: %v", key, err)
	}
}

// Invalidate 删除指定的键
func (l *Layer) Invalidate(ctx context.Context, keys ...string) error {
	if !l.Enabled() || len(keys) == 0 {
		return nil
	}
	return l.store.Delete(ctx, keys...)
}

// InvalidatePattern 删除匹配通配符的所有键，返回删除的数量
func (l *Layer) InvalidatePattern(ctx context.Context, pattern string) (int, error) {
	if !l.Enabled() {
		return 0, nil
	}
	keys, err := l.store.Scan(ctx, pattern)
	if err != nil {
		return 0, err
	}
	if err := l.store.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (l *Layer) load(ctx context.Context, key string) (*model.CacheEntry, bool) {
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		log.Printf("警告: 读取缓存 '%s' 失败: %v", key, err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("警告: 缓存条目 '%s' 格式错误: %v", key, err)
		return nil, false
	}
	return &entry, true
}

func (l *Layer) fresh(entry *model.CacheEntry, ttl time.Duration) bool {
	return l.now().UnixMilli()-entry.Timestamp <= ttl.Milliseconds()
}
