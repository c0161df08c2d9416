/*
 * @Description: 缓存服务工厂（支持自动降级）
 * @Author: 安知鱼
 * @Date: 2026-03-05 12:01:00
 * @LastEditTime: 2026-03-05 12:27:55
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// CacheServiceType 缓存服务类型
type CacheServiceType string

const (
	CacheTypeRedis  CacheServiceType = "redis"
	CacheTypeMemory CacheServiceType = "memory"
	CacheTypeNone   CacheServiceType = "none"
)

// NewCacheServiceByDriver 按配置的驱动创建缓存服务。
// none 返回 nil，调用方应将其视为“不缓存”。
func NewCacheServiceByDriver(ctx context.Context, driver string, redisClient *redis.Client) CacheService {
	switch CacheServiceType(strings.ToLower(strings.TrimSpace(driver))) {
	case CacheTypeNone:
		log.Println("⚠️  缓存已禁用，每次请求都会访问 GitHub")
		return nil
	case CacheTypeRedis:
		return NewCacheServiceWithFallback(ctx, redisClient)
	default:
		log.Println("🔄 使用内存缓存服务（Memory Cache）")
		return NewMemoryCacheService()
	}
}

// NewCacheServiceWithFallback 创建带有自动降级功能的缓存服务。
// redisClient 为 nil 或不可用时降级到内存缓存。
func NewCacheServiceWithFallback(ctx context.Context, redisClient *redis.Client) CacheService {
	if redisClient == nil {
		log.Println("🔄 使用内存缓存服务（Memory Cache）")
		return NewMemoryCacheService()
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis 不可用: %v，降级到内存缓存", err)
		return NewMemoryCacheService()
	}

	log.Println("✅ 使用 Redis 缓存服务")
	return NewCacheService(redisClient)
}

// GetCacheServiceType 获取当前使用的缓存类型
func GetCacheServiceType(svc CacheService) CacheServiceType {
	switch svc.(type) {
	case *redisCacheService:
		return CacheTypeRedis
	case *memoryCacheService:
		return CacheTypeMemory
	case nil:
		return CacheTypeNone
	default:
		return CacheTypeMemory
	}
}

// StopCacheService 释放内存缓存的后台任务，其他实现无需处理
func StopCacheService(svc CacheService) {
	if mem, ok := svc.(*memoryCacheService); ok {
		mem.Stop()
	}
}
