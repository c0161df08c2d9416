/*
 * @Description: 统一配置管理
 * @Author: 安知鱼
 * @Date: 2026-02-13 20:58:55
 * @LastEditTime: 2026-02-28 10:10:28
 * @LastEditors: 安知鱼
 */

// Package config 统一配置管理：conf.ini 提供默认值，环境变量覆盖。
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeyGistUser      = "Gist.User"
	KeyGistToken     = "Gist.Token"
	KeyGistAPIBase   = "Gist.APIBase"
	KeyGistPerPage   = "Gist.PerPage"
	KeyGistMaxPages  = "Gist.MaxPages"
	KeyGistRateLimit = "Gist.RateLimit"

	KeySiteURL         = "Site.URL"
	KeySiteName        = "Site.Name"
	KeySiteDescription = "Site.Description"

	KeyBlogPageSize   = "Blog.PageSize"
	KeyBlogFeedSize   = "Blog.FeedSize"
	KeyBlogCacheTTL   = "Blog.CacheTTL"
	KeyBlogWarmupSpec = "Blog.WarmupSpec"

	KeyMarkdownEngine = "Markdown.Engine"

	KeyCacheDriver = "Cache.Driver"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeyRateLimitPerMinute = "RateLimit.PerMinute"
	KeyRateLimitBurst     = "RateLimit.Burst"
)

// DefaultFilePath 是默认配置文件路径
const DefaultFilePath = "data/conf.ini"

const envPrefix = "GISTBLOG"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeyGistUser, KeyGistToken, KeyGistAPIBase, KeyGistPerPage, KeyGistMaxPages, KeyGistRateLimit,
	KeySiteURL, KeySiteName, KeySiteDescription,
	KeyBlogPageSize, KeyBlogFeedSize, KeyBlogCacheTTL, KeyBlogWarmupSpec,
	KeyMarkdownEngine,
	KeyCacheDriver,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyRateLimitPerMinute, KeyRateLimitBurst,
}

// legacyEnv 兼容不带前缀的环境变量名，排在前面的优先
var legacyEnv = map[string][]string{
	KeyGistUser:  {"GITHUB_USER"},
	KeyGistToken: {"GITHUB_TOKEN", "GITHUB_PERSONAL_ACCESS_TOKEN"},
	KeySiteURL:   {"SITE_URL"},
	KeySiteName:  {"SITE_NAME"},
}

var defaults = map[string]any{
	KeyServerPort:         8091,
	KeyServerDebug:        false,
	KeyGistAPIBase:        "https://api.github.com",
	KeyGistPerPage:        100,
	KeyGistMaxPages:       10,
	KeyGistRateLimit:      5,
	KeySiteName:           "Gist Blog",
	KeySiteDescription:    "A blog powered by GitHub Gists",
	KeyBlogPageSize:       10,
	KeyBlogFeedSize:       20,
	KeyBlogCacheTTL:       300,
	KeyBlogWarmupSpec:     "0 */4 * * * *",
	KeyMarkdownEngine:     "builtin",
	KeyCacheDriver:        "memory",
	KeyRedisDB:            0,
	KeyRateLimitPerMinute: 120,
	KeyRateLimitBurst:     30,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 加载 .env 与 data/conf.ini，再用环境变量覆盖
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("警告: 加载 .env 文件失败: %v", err)
	}
	return NewConfigFromFile(DefaultFilePath)
}

// NewConfigFromFile 从指定的 ini 文件加载配置，文件不存在时创建默认文件
func NewConfigFromFile(filePath string) (*Config, error) {
	vp := viper.New()
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 空值不覆盖内置默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 环境变量覆盖 ---
	envReplacer := strings.NewReplacer(".", "_")

	for _, key := range allKeys {
		for _, name := range legacyEnv[key] {
			if value, found := os.LookupEnv(name); found && value != "" {
				vp.Set(key, value)
				log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", name, key)
				break
			}
		}

		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// GetIntDefault 在值缺失或不为正数时返回 def
func (c *Config) GetIntDefault(key string, def int) int {
	if v := c.vp.GetInt(key); v > 0 {
		return v
	}
	return def
}

// GetSeconds 将以秒为单位的整数配置转换为 time.Duration
func (c *Config) GetSeconds(key string) time.Duration {
	return time.Duration(c.vp.GetInt(key)) * time.Second
}

// Set 覆盖单个配置项，主要用于测试
func (c *Config) Set(key string, value any) {
	c.vp.Set(key, value)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false

# GitHub 用户名与令牌，也可以通过 GITHUB_USER / GITHUB_TOKEN 环境变量提供
[Gist]
User =
Token =
APIBase = https://api.github.com
PerPage = 100
MaxPages = 10
RateLimit = 5

[Site]
URL =
Name = Gist Blog
Description = A blog powered by GitHub Gists

# CacheTTL 单位为秒；WarmupSpec 为带秒字段的 cron 表达式，留空则不预热
[Blog]
PageSize = 10
FeedSize = 20
CacheTTL = 300
WarmupSpec = 0 */4 * * * *

# builtin 或 goldmark
[Markdown]
Engine = builtin

# redis、memory 或 none
# 选择 redis 但未配置 Addr 或连接失败时，自动回退到内存缓存
[Cache]
Driver = memory

[Redis]
Addr =
Password =
DB = 0

# 每个 IP 每分钟的请求数，0 表示不限流
[RateLimit]
PerMinute = 120
Burst = 30
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
