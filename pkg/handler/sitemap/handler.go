/*
 * @Description: 站点地图处理器
 * @Author: 安知鱼
 * @Date: 2026-03-03 12:06:47
 * @LastEditTime: 2026-03-05 16:30:53
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/util"
)

// Handler 站点地图处理器
type Handler struct {
	sitemapService sitemap.Service
	cfg            *config.Config
}

// NewHandler 创建站点地图处理器
func NewHandler(sitemapService sitemap.Service, cfg *config.Config) *Handler {
	return &Handler{
		sitemapService: sitemapService,
		cfg:            cfg,
	}
}

// GetSitemap 获取站点地图
func (h *Handler) GetSitemap(c *gin.Context) {
	ctx := c.Request.Context()
	baseURL := util.GetSiteURL(c, h.cfg.GetString(config.KeySiteURL))

	sitemapData, err := h.sitemapService.GenerateSitemap(ctx, baseURL)
	if err != nil {
		log.Printf("[Sitemap Handler] 生成站点地图失败: %v", err)
		c.String(http.StatusInternalServerError, "生成站点地图失败")
		return
	}

	xmlData, err := h.sitemapService.GenerateXML(sitemapData)
	if err != nil {
		c.String(http.StatusInternalServerError, "生成XML失败")
		return
	}

	// 站点地图可以缓存较长时间
	c.Header("Cache-Control", "max-age=3600")
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))

	c.Data(http.StatusOK, "application/xml;charset=UTF-8", xmlData)
}

// GetRobots 获取robots.txt
func (h *Handler) GetRobots(c *gin.Context) {
	robotsContent := h.sitemapService.GenerateRobots(util.GetSiteURL(c, h.cfg.GetString(config.KeySiteURL)))

	c.Header("Cache-Control", "public, max-age=86400") // 24小时缓存
	c.String(http.StatusOK, robotsContent)
}
