package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectedValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})

	Version, Commit, Date = "v1.2.3", "abc1234", "2024-01-02 03:04:05"

	info := GetBuildInfo()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.Commit)
	assert.Equal(t, "2024-01-02 03:04:05", info.Date)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, "v1.2.3, commit abc1234, built at 2024-01-02 03:04:05", GetVersionString())
}

func TestGetVersionFallback(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })

	Version = "dev"
	assert.NotEmpty(t, GetVersion())
}

func TestShortRevision(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "缺失", in: "", want: "unknown"},
		{name: "截断为 7 位", in: "0123456789abcdef", want: "0123456"},
		{name: "短于 7 位原样返回", in: "abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortRevision(tt.in))
		})
	}
}

func TestFormatBuildTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "缺失", in: "", want: "unknown"},
		{name: "RFC3339 转为 UTC", in: "2024-05-01T10:00:00+08:00", want: "2024-05-01 02:00:00"},
		{name: "无法解析时原样返回", in: "yesterday", want: "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBuildTime(tt.in))
		})
	}
}

func TestVersionStringOmitsUnknownParts(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})

	Version, Commit, Date = "v2.0.0", "abcdef1", "unknown"
	if GetBuildDate() != "unknown" {
		t.Skip("测试二进制带有 VCS 构建时间")
	}
	assert.Equal(t, "v2.0.0, commit abcdef1", GetVersionString())
}
