// Package version 提供构建版本信息，优先使用 ldflags 注入的值，
// 其次读取 Go 工具链写入的 VCS 信息。
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// 构建时通过 -ldflags "-X .../version.Version=v1.0.0" 注入
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// ModulePath 是本模块的导入路径，作为依赖被引入时用于查找版本号
const ModulePath = "github.com/anzhiyu-c/anheyu-gistblog"

const (
	unknown        = "unknown"
	shortCommitLen = 7
	dateLayout     = "2006-01-02 15:04:05"
)

// BuildInfo 包含构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetBuildInfo 返回详细的构建信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		Commit:    GetCommit(),
		Date:      GetBuildDate(),
		GoVersion: GoVersion,
	}
}

// GetVersion 返回应用版本号
func GetVersion() string {
	if injected(Version, "dev") {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown (no build info)"
	}
	return moduleVersion(info)
}

// GetCommit 返回短 commit hash
func GetCommit() string {
	if injected(Commit, unknown) {
		return Commit
	}
	return shortRevision(vcsSetting("vcs.revision"))
}

// GetBuildDate 返回构建时间
func GetBuildDate() string {
	if injected(Date, unknown) {
		return Date
	}
	return formatBuildTime(vcsSetting("vcs.time"))
}

// GetVersionString 返回 "版本, commit xxx, built at yyy" 形式的字符串，
// 未知的部分省略
func GetVersionString() string {
	parts := []string{GetVersion()}
	if commit := GetCommit(); commit != unknown {
		parts = append(parts, "commit "+commit)
	}
	if date := GetBuildDate(); date != unknown {
		parts = append(parts, "built at "+date)
	}
	return strings.Join(parts, ", ")
}

func injected(value, placeholder string) bool {
	return value != "" && value != placeholder
}

func moduleVersion(info *debug.BuildInfo) string {
	if info.Main.Path != ModulePath {
		for _, dep := range info.Deps {
			if dep.Path == ModulePath {
				return dep.Version
			}
		}
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// vcsSetting 读取构建信息中的 VCS 字段，缺失时返回空字符串
func vcsSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func shortRevision(rev string) string {
	if rev == "" {
		return unknown
	}
	if len(rev) > shortCommitLen {
		return rev[:shortCommitLen]
	}
	return rev
}

func formatBuildTime(value string) string {
	if value == "" {
		return unknown
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(dateLayout)
	}
	return value
}
