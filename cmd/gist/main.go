/*
 * @Description: gist 命令行工具入口
 * @Author: 安知鱼
 * @Date: 2026-03-05 20:41:03
 * @LastEditTime: 2026-03-05 20:41:03
 * @LastEditors: 安知鱼
 */
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anzhiyu-c/anheyu-gistblog/cmd/server"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/app/cli"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/config"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

func main() {
	root := cli.NewRootCommand(func() (gist.Service, error) {
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		// 命令行每次都直接读取 GitHub，不使用缓存
		return server.NewPostService(cfg, nil), nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		stop()
		os.Exit(1)
	}
}
