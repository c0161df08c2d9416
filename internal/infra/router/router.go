/*
 * @Description: 路由注册
 * @Author: 安知鱼
 * @Date: 2026-03-03 10:17:30
 * @LastEditTime: 2026-03-03 10:17:30
 * @LastEditors: 安知鱼
 */

// Package router 将所有处理器注册到 gin 引擎。
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/app/middleware"
	blog_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/blog"
	post_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/post"
	rss_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/sitemap"
	version_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/version"
)

// NoCacheMiddleware 确保 JSON 接口的响应不会被 CDN 缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	blogHandler    *blog_handler.Handler
	postHandler    *post_handler.Handler
	rssHandler     *rss_handler.Handler
	sitemapHandler *sitemap_handler.Handler
	versionHandler *version_handler.Handler
	rateLimit      gin.HandlerFunc
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	blogHandler *blog_handler.Handler,
	postHandler *post_handler.Handler,
	rssHandler *rss_handler.Handler,
	sitemapHandler *sitemap_handler.Handler,
	versionHandler *version_handler.Handler,
	rateLimit gin.HandlerFunc,
) *Router {
	if rateLimit == nil {
		rateLimit = middleware.RateLimit(0, 0)
	}
	return &Router{
		blogHandler:    blogHandler,
		postHandler:    postHandler,
		rssHandler:     rssHandler,
		sitemapHandler: sitemapHandler,
		versionHandler: versionHandler,
		rateLimit:      rateLimit,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.SecurityHeaders(), middleware.Cors())

	public := engine.Group("/", r.rateLimit)
	r.registerBlogRoutes(public)
	r.registerFeedRoutes(public)

	apiGroup := engine.Group("/api", r.rateLimit, NoCacheMiddleware())
	r.registerPostRoutes(apiGroup)
	r.registerVersionRoutes(apiGroup)

	// 其他路径统一返回 404 页面
	engine.NoRoute(r.blogHandler.NotFound)
}

func (r *Router) registerBlogRoutes(group *gin.RouterGroup) {
	group.GET("/", r.blogHandler.Index)
	group.GET("/index", r.blogHandler.Index)
	group.GET("/gist/:id", r.blogHandler.Post)
	group.GET("/tag/:tag", r.blogHandler.Tag)
}

func (r *Router) registerFeedRoutes(group *gin.RouterGroup) {
	group.GET("/rss.xml", r.rssHandler.GetRSSFeed)
	group.GET("/feed.xml", r.rssHandler.GetRSSFeed)
	group.GET("/sitemap.xml", r.sitemapHandler.GetSitemap)
	group.GET("/robots.txt", r.sitemapHandler.GetRobots)
}

func (r *Router) registerPostRoutes(api *gin.RouterGroup) {
	api.GET("/posts", r.postHandler.ListPosts)
	api.GET("/posts/:id", r.postHandler.GetPost)
	api.GET("/tags", r.postHandler.ListTags)
}

func (r *Router) registerVersionRoutes(api *gin.RouterGroup) {
	api.GET("/version", r.versionHandler.GetVersion)
	api.GET("/version/string", r.versionHandler.GetVersionString)
}
