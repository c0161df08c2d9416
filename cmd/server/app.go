/*
 * @Description: 应用组装与启动
 * @Author: 安知鱼
 * @Date: 2026-02-17 14:02:05
 * @LastEditTime: 2026-02-28 21:04:15
 * @LastEditors: 安知鱼
 */

// Package server 负责组装并运行整个应用。
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/app/task"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/infra/github"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	blog_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/blog"
	post_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/post"
	rss_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/sitemap"
	version_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/version"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/cache"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
	parser_service "github.com/anzhiyu-c/anheyu-gistblog/pkg/service/parser"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/rss"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/utility"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/view"
)

const shutdownTimeout = 10 * time.Second

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg         *config.Config
	engine      *gin.Engine
	taskBroker  *task.Broker
	redisClient *redis.Client
	cacheSvc    utility.CacheService
	postSvc     gist.Service
	appVersion  string
}

func (a *App) PrintBanner() {
	banner := `

       ██████╗ ██╗███████╗████████╗    ██████╗ ██╗      ██████╗  ██████╗
      ██╔════╝ ██║██╔════╝╚══██╔══╝    ██╔══██╗██║     ██╔═══██╗██╔════╝
      ██║  ███╗██║███████╗   ██║       ██████╔╝██║     ██║   ██║██║  ███╗
      ██║   ██║██║╚════██║   ██║       ██╔══██╗██║     ██║   ██║██║   ██║
      ╚██████╔╝██║███████║   ██║       ██████╔╝███████╗╚██████╔╝╚██████╔╝
       ╚═════╝ ╚═╝╚══════╝   ╚═╝       ╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝

`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Gist Blog - Version: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp() (*App, func(), error) {
	appVersion := version.GetVersion()

	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if cfg.GetString(config.KeyGistUser) == "" {
		return nil, nil, errors.New("未配置 GitHub 用户名，请设置 GITHUB_USER 或 [Gist] User")
	}

	// --- Phase 2: 初始化基础设施 ---
	// Redis 不可用时返回 nil，缓存自动降级到内存
	redisClient := database.NewRedisClient(context.Background(), cfg)
	cacheSvc := utility.NewCacheServiceByDriver(context.Background(), cfg.GetString(config.KeyCacheDriver), redisClient)

	cleanup := func() {
		log.Println("执行清理操作...")
		utility.StopCacheService(cacheSvc)
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}

	// --- Phase 3: 初始化业务逻辑层 ---
	postSvc := NewPostService(cfg, cacheSvc)
	parserSvc := parser_service.NewService(cfg.GetString(config.KeyMarkdownEngine))

	viewSvc, err := view.NewService(view.SiteInfo{
		Name:        cfg.GetString(config.KeySiteName),
		Description: cfg.GetString(config.KeySiteDescription),
		URL:         cfg.GetString(config.KeySiteURL),
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("初始化页面模板失败: %w", err)
	}
	rssSvc := rss.NewService(postSvc, rss.SiteInfo{
		Name:        cfg.GetString(config.KeySiteName),
		Description: cfg.GetString(config.KeySiteDescription),
	})
	sitemapSvc := sitemap.NewService(postSvc)

	// --- Phase 4: 初始化后台任务 ---
	taskBroker := task.NewBroker(postSvc)
	if err := taskBroker.RegisterCronJobs(cfg.GetString(config.KeyBlogWarmupSpec)); err != nil {
		taskBroker.Stop()
		cleanup()
		return nil, nil, err
	}

	// --- Phase 5: 初始化表现层 (Handlers) ---
	pageSize := cfg.GetInt(config.KeyBlogPageSize)
	blogHandler := blog_handler.NewHandler(postSvc, parserSvc, viewSvc, pageSize)
	postHandler := post_handler.NewHandler(postSvc, pageSize)
	rssHandler := rss_handler.NewHandler(rssSvc, cfg)
	sitemapHandler := sitemap_handler.NewHandler(sitemapSvc, cfg)
	versionHandler := version_handler.NewHandler()

	// --- Phase 6: 初始化路由 ---
	appRouter := router.NewRouter(
		blogHandler,
		postHandler,
		rssHandler,
		sitemapHandler,
		versionHandler,
		middleware.RateLimit(cfg.GetInt(config.KeyRateLimitPerMinute), cfg.GetInt(config.KeyRateLimitBurst)),
	)

	// --- Phase 7: 配置 Gin 引擎 ---
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	// 只信任本机代理转发的客户端 IP
	if err := engine.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		log.Printf("警告: 设置可信代理失败: %v", err)
	}
	appRouter.Setup(engine)

	app := &App{
		cfg:         cfg,
		engine:      engine,
		taskBroker:  taskBroker,
		redisClient: redisClient,
		cacheSvc:    cacheSvc,
		postSvc:     postSvc,
		appVersion:  appVersion,
	}

	return app, cleanup, nil
}

// NewPostService 基于 GitHub 数据源创建文章服务，cacheSvc 为 nil 时不缓存。
// 命令行工具与 HTTP 服务共用这一构造过程。
func NewPostService(cfg *config.Config, cacheSvc utility.CacheService) gist.Service {
	gistClient := github.NewClient(
		cfg.GetString(config.KeyGistAPIBase),
		cfg.GetString(config.KeyGistToken),
		github.WithRateLimit(float64(cfg.GetInt(config.KeyGistRateLimit)), cfg.GetInt(config.KeyGistRateLimit)),
		github.WithUserAgent("gist-blog/"+version.GetVersion()),
	)

	return gist.NewService(gistClient, cache.NewLayer(cacheSvc), gist.Options{
		User:     cfg.GetString(config.KeyGistUser),
		PerPage:  cfg.GetInt(config.KeyGistPerPage),
		MaxPages: cfg.GetInt(config.KeyGistMaxPages),
		TTL:      cfg.GetSeconds(config.KeyBlogCacheTTL),
	})
}

// Engine 返回 Gin 引擎
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// PostService 返回文章服务
func (a *App) PostService() gist.Service {
	return a.postSvc
}

// Version 返回应用的版本号
func (a *App) Version() string {
	return a.appVersion
}

// Run 启动后台任务与 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.taskBroker.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("🚀 应用程序启动成功，正在监听端口: %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服务异常退出: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Println("正在关闭 HTTP 服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Stop() {
	if a.taskBroker != nil {
		a.taskBroker.Stop()
		log.Println("任务调度器已停止。")
	}
}
