package router

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
	blog_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/blog"
	post_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/post"
	rss_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/sitemap"
	version_handler "github.com/anzhiyu-c/anheyu-gistblog/pkg/handler/version"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist/gisttest"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/parser"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/rss"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/view"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SITE_URL", "")

	cfg, err := config.NewConfigFromFile(filepath.Join(t.TempDir(), "conf.ini"))
	require.NoError(t, err)

	src := &gisttest.Source{Gists: []model.GistRecord{
		gisttest.Record("a1", "Hello #go", "hello.md", "# Hi", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
	}}
	postSvc := gisttest.NewService(src)

	viewSvc, err := view.NewService(view.SiteInfo{Name: "Router Blog"})
	require.NoError(t, err)

	r := NewRouter(
		blog_handler.NewHandler(postSvc, parser.NewService("builtin"), viewSvc, 10),
		post_handler.NewHandler(postSvc, 10),
		rss_handler.NewHandler(rss.NewService(postSvc, rss.SiteInfo{Name: "Router Blog"}), cfg),
		sitemap_handler.NewHandler(sitemap.NewService(postSvc), cfg),
		version_handler.NewHandler(),
		nil,
	)

	engine := gin.New()
	r.Setup(engine)
	return engine
}

func TestRoutes(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "首页", target: "/", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "Hello"},
		{name: "index 别名", target: "/index", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "Hello"},
		{name: "文章", target: "/gist/a1", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "<h1>Hi</h1>"},
		{name: "标签", target: "/tag/go", wantStatus: http.StatusOK, wantType: "text/html", wantContain: "Posts tagged with #go"},
		{name: "RSS", target: "/rss.xml", wantStatus: http.StatusOK, wantType: "application/rss+xml", wantContain: "<rss"},
		{name: "Feed 别名", target: "/feed.xml", wantStatus: http.StatusOK, wantType: "application/rss+xml", wantContain: "<rss"},
		{name: "站点地图", target: "/sitemap.xml", wantStatus: http.StatusOK, wantType: "application/xml", wantContain: "<urlset"},
		{name: "robots", target: "/robots.txt", wantStatus: http.StatusOK, wantType: "text/plain", wantContain: "Sitemap:"},
		{name: "文章接口", target: "/api/posts", wantStatus: http.StatusOK, wantType: "application/json", wantContain: `"a1"`},
		{name: "标签接口", target: "/api/tags", wantStatus: http.StatusOK, wantType: "application/json", wantContain: `"go"`},
		{name: "版本接口", target: "/api/version", wantStatus: http.StatusOK, wantType: "application/json", wantContain: `"go_version"`},
		{name: "未知路径", target: "/nope", wantStatus: http.StatusNotFound, wantType: "text/html", wantContain: "404 - Page Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.wantType)
			assert.Contains(t, w.Body.String(), tt.wantContain)
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestAPINoCache(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
