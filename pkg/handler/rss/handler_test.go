package rss

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist/gisttest"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/rss"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("SITE_URL", "")
	cfg, err := config.NewConfigFromFile(filepath.Join(t.TempDir(), "conf.ini"))
	require.NoError(t, err)
	return cfg
}

func newTestRouter(t *testing.T, src *gisttest.Source, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := rss.NewService(gisttest.NewService(src), rss.SiteInfo{Name: "Test Blog", Description: "desc"})
	h := NewHandler(svc, cfg)

	r := gin.New()
	r.GET("/rss.xml", h.GetRSSFeed)
	r.GET("/feed.xml", h.GetRSSFeed)
	return r
}

func TestGetRSSFeed(t *testing.T) {
	created := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	src := &gisttest.Source{Gists: []model.GistRecord{
		gisttest.Record("a1", "Hello #go", "hello.md", "hello world", created),
		gisttest.Record("b2", "Older #go", "old.md", "old", created.Add(-time.Hour)),
	}}

	t.Run("由请求推断站点地址", func(t *testing.T) {
		r := newTestRouter(t, src, newTestConfig(t))

		for _, path := range []string{"/rss.xml", "/feed.xml"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/rss+xml;charset=UTF-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "max-age=3600", w.Header().Get("Cache-Control"))
			assert.Contains(t, w.Body.String(), "<link>http://example.com/gist/a1</link>")
		}
	})

	t.Run("使用配置的站点地址与数量", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Set(config.KeySiteURL, "https://blog.test/")
		cfg.Set(config.KeyBlogFeedSize, 1)
		r := newTestRouter(t, src, cfg)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<link>https://blog.test/gist/a1</link>")
		assert.NotContains(t, body, "b2")
	})
}

func TestGetRSSFeed_SourceError(t *testing.T) {
	r := newTestRouter(t, &gisttest.Source{Err: assert.AnError}, newTestConfig(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
