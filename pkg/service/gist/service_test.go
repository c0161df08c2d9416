package gist

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/cache"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/utility"
)

type fakeSource struct {
	mu        sync.Mutex
	pages     [][]model.GistRecord
	details   map[string]model.GistRecord
	listErr   error
	detailErr error
	listCalls int
	getCalls  int
}

func (f *fakeSource) ListByUser(_ context.Context, _ string, page, _ int) ([]model.GistRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if page-1 < len(f.pages) {
		return f.pages[page-1], nil
	}
	return nil, nil
}

func (f *fakeSource) GetByID(_ context.Context, id string) (*model.GistRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	rec, ok := f.details[id]
	if !ok {
		return nil, constant.ErrNotFound
	}
	return &rec, nil
}

func file(name, content string) model.GistFile {
	return model.GistFile{Filename: name, Content: content}
}

func newTestService(t *testing.T, src *fakeSource, perPage int) Service {
	t.Helper()
	store := utility.NewMemoryCacheService()
	t.Cleanup(func() { utility.StopCacheService(store) })
	return NewService(src, cache.NewLayer(store), Options{User: "octocat", PerPage: perPage, MaxPages: 10, TTL: time.Minute})
}

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestService_ListPosts(t *testing.T) {
	src := &fakeSource{pages: [][]model.GistRecord{
		{
			newRecord("a", "First #go", true, day(1), file("a.md", "A")),
			newRecord("b", "Private #go", false, day(2), file("b.md", "B")),
		},
		{
			newRecord("c", "No tags", true, day(3), file("c.md", "C")),
			newRecord("d", "Latest #web", true, day(4), file("d.md", "D")),
		},
	}}
	svc := newTestService(t, src, 2)

	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "d", posts[0].ID)
	assert.Equal(t, "a", posts[1].ID)
	assert.Equal(t, 3, src.listCalls, "两页满页之后还需要一次空页确认")

	_, err = svc.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, src.listCalls, "第二次读取命中缓存")
}

func TestService_ListPostsStopsAtMaxPages(t *testing.T) {
	pages := make([][]model.GistRecord, 20)
	for i := range pages {
		pages[i] = []model.GistRecord{newRecord(fmt.Sprintf("id%d", i), "#t", true, day(1), file("x.md", "x"))}
	}
	src := &fakeSource{pages: pages}
	svc := newTestService(t, src, 1)

	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 10)
	assert.Equal(t, 10, src.listCalls)
}

func TestService_ListPostsSourceError(t *testing.T) {
	src := &fakeSource{listErr: &constant.SourceError{StatusCode: 401, Message: "Bad credentials"}}
	svc := newTestService(t, src, 100)

	_, err := svc.ListPosts(context.Background())
	assert.ErrorIs(t, err, constant.ErrSourceUnavailable)

	_, err = svc.ListPosts(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, src.listCalls, "失败结果不缓存")
}

func TestService_ListPostsWithoutUser(t *testing.T) {
	svc := NewService(&fakeSource{}, cache.NewLayer(nil), Options{})
	_, err := svc.ListPosts(context.Background())
	assert.ErrorIs(t, err, constant.ErrSourceUnavailable)
}

func TestService_GetPost(t *testing.T) {
	listed := newRecord("listed", "Listed #go", true, day(1), file("l.md", "L"))
	src := &fakeSource{
		pages: [][]model.GistRecord{{listed}},
		details: map[string]model.GistRecord{
			"detail": newRecord("detail", "Detail #go", true, day(2), file("d.md", "full content")),
			"secret": newRecord("secret", "Secret #go", false, day(2), file("s.md", "S")),
			"notags": newRecord("notags", "No tags", true, day(2), file("n.md", "N")),
		},
	}
	svc := newTestService(t, src, 100)
	ctx := context.Background()

	t.Run("详情接口", func(t *testing.T) {
		post, err := svc.GetPost(ctx, "detail")
		require.NoError(t, err)
		assert.Equal(t, "full content", post.Content)
	})

	t.Run("详情命中缓存", func(t *testing.T) {
		before := src.getCalls
		_, err := svc.GetPost(ctx, "detail")
		require.NoError(t, err)
		assert.Equal(t, before, src.getCalls)
	})

	t.Run("没有标签的公开 gist 也能按 ID 访问", func(t *testing.T) {
		post, err := svc.GetPost(ctx, "notags")
		require.NoError(t, err)
		assert.Equal(t, "No tags", post.Description)
	})

	t.Run("详情缺失时回退到列表", func(t *testing.T) {
		post, err := svc.GetPost(ctx, "listed")
		require.NoError(t, err)
		assert.Equal(t, "Listed", post.Description)
	})

	t.Run("私有 gist 不可见", func(t *testing.T) {
		_, err := svc.GetPost(ctx, "secret")
		assert.ErrorIs(t, err, constant.ErrNotFound)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := svc.GetPost(ctx, "nope")
		assert.ErrorIs(t, err, constant.ErrNotFound)
	})

	t.Run("非法 ID 不请求数据源", func(t *testing.T) {
		before := src.getCalls
		_, err := svc.GetPost(ctx, "../users")
		assert.ErrorIs(t, err, constant.ErrNotFound)
		assert.Equal(t, before, src.getCalls)
	})
}

func TestService_GetPostDetailFailureFallsBackToList(t *testing.T) {
	src := &fakeSource{
		pages:     [][]model.GistRecord{{newRecord("a", "A #go", true, day(1), file("a.md", "A"))}},
		detailErr: &constant.SourceError{StatusCode: 500},
	}
	svc := newTestService(t, src, 100)

	post, err := svc.GetPost(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", post.ID)
}

func TestService_PostsByTagAndTags(t *testing.T) {
	src := &fakeSource{pages: [][]model.GistRecord{{
		newRecord("a", "A #go #web", true, day(3), file("a.md", "A")),
		newRecord("b", "B #Go", true, day(2), file("b.md", "B")),
		newRecord("c", "C #go", true, day(1), file("c.md", "C")),
	}}}
	svc := newTestService(t, src, 100)
	ctx := context.Background()

	posts, err := svc.PostsByTag(ctx, "go")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "c", posts[1].ID)

	posts, err = svc.PostsByTag(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, posts)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.TagCount{{Name: "go", Count: 2}, {Name: "web", Count: 1}, {Name: "Go", Count: 1}}, tags)
}

func TestService_Refresh(t *testing.T) {
	src := &fakeSource{
		pages:   [][]model.GistRecord{{newRecord("a", "A #go", true, day(1), file("a.md", "old"))}},
		details: map[string]model.GistRecord{"a": newRecord("a", "A #go", true, day(1), file("a.md", "old"))},
	}
	svc := newTestService(t, src, 100)
	ctx := context.Background()

	_, err := svc.GetPost(ctx, "a")
	require.NoError(t, err)

	src.mu.Lock()
	src.pages = [][]model.GistRecord{{
		newRecord("a", "A #go", true, day(1), file("a.md", "new")),
		newRecord("b", "B #go", true, day(2), file("b.md", "B")),
	}}
	src.details["a"] = newRecord("a", "A #go", true, day(1), file("a.md", "new"))
	src.mu.Unlock()

	n, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	post, err := svc.GetPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", post.Content, "刷新后详情缓存应失效")
}
