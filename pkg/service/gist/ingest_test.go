package gist

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantTags []string
		wantDesc string
	}{
		{name: "大小写不同的标签都保留", in: "Hello #world this is #World", wantTags: []string{"world", "World"}, wantDesc: "Hello  this is"},
		{name: "只有标签时标题为 Untitled", in: "#go #rust", wantTags: []string{"go", "rust"}, wantDesc: "Untitled"},
		{name: "空描述", in: "", wantTags: []string{}, wantDesc: "Untitled"},
		{name: "没有标签", in: "  plain title ", wantTags: []string{}, wantDesc: "plain title"},
		{name: "标签包含下划线与数字", in: "Notes #go_1_22", wantTags: []string{"go_1_22"}, wantDesc: "Notes"},
		{name: "重复的标签每次出现都保留", in: "#go notes #go", wantTags: []string{"go", "go"}, wantDesc: "notes"},
		{name: "单独的井号不是标签", in: "C# and # alone", wantTags: []string{}, wantDesc: "C# and # alone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, desc := ExtractTags(tt.in)
			assert.Equal(t, tt.wantTags, tags)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestBuildExcerpt(t *testing.T) {
	long := strings.Repeat("a", 250)
	exact := strings.Repeat("b", 200)
	short := strings.Repeat("c", 199)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "超过 200 个字符", in: long, want: strings.Repeat("a", 200) + "..."},
		{name: "恰好 200 个字符也追加省略号", in: exact, want: exact + "..."},
		{name: "199 个字符不追加", in: short, want: short},
		{name: "去掉标题行并折叠换行", in: "# Title\nfirst line\n\n\nsecond line\n", want: "first line second line"},
		{name: "去掉围栏代码块", in: "before\n```go\ncode()\n```\nafter", want: "before after"},
		{name: "多字节字符按字符计数", in: strings.Repeat("中", 201), want: strings.Repeat("中", 200) + "..."},
		{name: "空内容", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildExcerpt(tt.in))
		})
	}
}

func TestBuildExcerpt_LengthBound(t *testing.T) {
	for _, n := range []int{0, 1, 199, 200, 201, 1000} {
		got := BuildExcerpt(strings.Repeat("x", n))
		assert.LessOrEqual(t, strutil.Len(got), ExcerptLength+3)
	}
}

func newRecord(id, desc string, public bool, created time.Time, files ...model.GistFile) model.GistRecord {
	om := orderedmap.New[string, model.GistFile]()
	for _, f := range files {
		om.Set(f.Filename, f)
	}
	return model.GistRecord{
		ID:          id,
		Description: desc,
		Files:       om,
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
		HTMLURL:     "https://gist.github.com/" + id,
		Public:      public,
	}
}

func TestNormalize(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raw := newRecord("abc", "My post #go #web", true, created,
		model.GistFile{Filename: "post.md", Content: "# Heading\nHello world"},
		model.GistFile{Filename: "extra.txt", Content: "ignored"},
	)

	post := Normalize(raw)
	assert.Equal(t, "abc", post.ID)
	assert.Equal(t, "My post", post.Description)
	assert.Equal(t, []string{"go", "web"}, post.Tags)
	assert.Equal(t, "post.md", post.Filename)
	assert.Equal(t, "# Heading\nHello world", post.Content)
	assert.Equal(t, "Hello world", post.Excerpt)
	assert.Equal(t, created, post.CreatedAt)
	assert.Equal(t, "https://gist.github.com/abc", post.URL)
	assert.True(t, post.Public)
}

func TestNormalize_MissingFields(t *testing.T) {
	assert.NotPanics(t, func() {
		post := Normalize(model.GistRecord{})
		assert.Equal(t, UntitledDescription, post.Description)
		assert.Empty(t, post.Filename)
		assert.Empty(t, post.Excerpt)
		assert.Empty(t, post.Tags)
	})
}

func TestPublish(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []model.Post{
		{ID: "old", Tags: []string{"a"}, Public: true, CreatedAt: day(1)},
		{ID: "private", Tags: []string{"a"}, Public: false, CreatedAt: day(5)},
		{ID: "untagged", Tags: []string{}, Public: true, CreatedAt: day(6)},
		{ID: "new", Tags: []string{"b"}, Public: true, CreatedAt: day(3)},
		{ID: "tie1", Tags: []string{"c"}, Public: true, CreatedAt: day(2)},
		{ID: "tie2", Tags: []string{"c"}, Public: true, CreatedAt: day(2)},
	}

	got := Publish(posts)
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"new", "tie1", "tie2", "old"}, ids)
}

func TestAllTags(t *testing.T) {
	posts := []model.Post{
		{Tags: []string{"go", "web"}},
		{Tags: []string{"rust"}},
		{Tags: []string{"web", "rust"}},
		{Tags: []string{"go", "zig"}},
	}

	assert.Equal(t, []string{"go", "web", "rust", "zig"}, AllTags(posts))
	assert.Equal(t, []model.TagCount{
		{Name: "go", Count: 2},
		{Name: "web", Count: 2},
		{Name: "rust", Count: 2},
		{Name: "zig", Count: 1},
	}, TagCounts(posts))
	assert.Empty(t, AllTags(nil))
}

func TestTagCounts_RepeatedTagInOnePost(t *testing.T) {
	tags, _ := ExtractTags("#go notes #go #web")
	posts := []model.Post{
		{Tags: tags},
		{Tags: []string{"web"}},
		{Tags: []string{"rust"}},
	}

	assert.Equal(t, []model.TagCount{
		{Name: "go", Count: 2},
		{Name: "web", Count: 2},
		{Name: "rust", Count: 1},
	}, TagCounts(posts))
	assert.Equal(t, []string{"go", "web", "rust"}, AllTags(posts))
}
