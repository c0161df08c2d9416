/*
 * @Description: Redis 客户端初始化
 * @Author: 安知鱼
 * @Date: 2026-02-25 18:21:44
 * @LastEditTime: 2026-02-28 23:37:51
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
)

// NewRedisClient 根据配置创建 Redis 客户端。
// 未配置地址或连接失败时返回 nil 而不是 error，由上层决定降级到内存缓存。
func NewRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	redisAddr := cfg.GetString(config.KeyRedisAddr)
	if redisAddr == "" {
		log.Println("⚠️  Redis 地址未配置，将使用内存缓存")
		return nil
	}

	redisDB := cfg.GetInt(config.KeyRedisDB)
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.GetString(config.KeyRedisPassword),
		DB:       redisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将使用内存缓存", redisAddr, redisDB, err)
		rdb.Close()
		return nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", redisAddr, redisDB)
	return rdb
}
