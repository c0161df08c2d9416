/*
 * @Description: RSS Feed 处理器
 * @Author: 安知鱼
 * @Date: 2026-03-16 11:07:54
 * @LastEditTime: 2026-03-19 22:30:30
 * @LastEditors: 安知鱼
 */
package rss

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/response"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/rss"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/util"
)

// Handler RSS 处理器
type Handler struct {
	rssService rss.Service
	cfg        *config.Config
}

// NewHandler 创建 RSS 处理器
func NewHandler(rssService rss.Service, cfg *config.Config) *Handler {
	return &Handler{
		rssService: rssService,
		cfg:        cfg,
	}
}

// GetRSSFeed 获取 RSS feed，/rss.xml 与 /feed.xml 共用
func (h *Handler) GetRSSFeed(c *gin.Context) {
	ctx := c.Request.Context()

	opts := &rss.RSSOptions{
		ItemCount: h.cfg.GetIntDefault(config.KeyBlogFeedSize, rss.DefaultItemCount),
		BaseURL:   util.GetSiteURL(c, h.cfg.GetString(config.KeySiteURL)),
		BuildTime: time.Now(),
	}

	feed, err := h.rssService.GenerateFeed(ctx, opts)
	if err != nil {
		log.Printf("[RSS Handler] 生成 RSS feed 失败: %v", err)
		response.Fail(c, http.StatusInternalServerError, "生成RSS feed失败")
		return
	}

	xmlContent := h.rssService.GenerateXML(feed)

	c.Header("Cache-Control", "max-age=3600")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Last-Modified", opts.BuildTime.UTC().Format(http.TimeFormat))

	c.Data(http.StatusOK, "application/rss+xml;charset=UTF-8", []byte(xmlContent))
}
