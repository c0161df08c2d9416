package sitemap

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist/gisttest"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/sitemap"
)

func newTestRouter(t *testing.T, src *gisttest.Source) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SITE_URL", "")

	cfg, err := config.NewConfigFromFile(filepath.Join(t.TempDir(), "conf.ini"))
	require.NoError(t, err)
	cfg.Set(config.KeySiteURL, "https://blog.test")

	h := NewHandler(sitemap.NewService(gisttest.NewService(src)), cfg)

	r := gin.New()
	r.GET("/sitemap.xml", h.GetSitemap)
	r.GET("/robots.txt", h.GetRobots)
	return r
}

func TestGetSitemap(t *testing.T) {
	src := &gisttest.Source{Gists: []model.GistRecord{
		gisttest.Record("a1", "Hello #go", "hello.md", "hello", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}}
	r := newTestRouter(t, src)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "max-age=3600", w.Header().Get("Cache-Control"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<loc>https://blog.test/</loc>")
	assert.Contains(t, body, "<loc>https://blog.test/gist/a1</loc>")
	assert.Contains(t, body, "<loc>https://blog.test/tag/go</loc>")
}

func TestGetSitemap_SourceError(t *testing.T) {
	r := newTestRouter(t, &gisttest.Source{Err: assert.AnError})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRobots(t *testing.T) {
	r := newTestRouter(t, &gisttest.Source{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://blog.test/sitemap.xml")
}
