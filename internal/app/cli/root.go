/*
 * @Description: 命令行根命令
 * @Author: 安知鱼
 * @Date: 2026-02-19 20:03:14
 * @LastEditTime: 2026-02-20 12:18:26
 * @LastEditors: 安知鱼
 */

// Package cli 实现 gist 命令行工具，在终端里浏览已发布的文章。
package cli

import (
	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// ServiceFactory 在命令真正执行时才创建文章服务，
// 这样 --help 等命令不需要读取配置。
type ServiceFactory func() (gist.Service, error)

// NewRootCommand 创建根命令并挂载所有子命令。
func NewRootCommand(newService ServiceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "gist",
		Short: "浏览发布在 GitHub Gist 上的博客文章",
		Long: `gist 从 GitHub 拉取配置用户的公开 gist，按博客的规则筛选后展示。

示例:
  gist list                 # 列出所有已发布文章
  gist list --tag go        # 只列出带 #go 标签的文章
  gist list --tags          # 标签汇总
  gist show <id>            # 查看单篇文章`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCommand(newService),
		newShowCommand(newService),
	)
	return root
}
