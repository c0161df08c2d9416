/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-03-06 11:31:03
 * @LastEditTime: 2026-03-07 17:08:47
 * @LastEditors: 安知鱼
 */
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-gistblog/cmd/server"
	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/version"
)

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "打印版本信息后退出")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetVersionString())
		return
	}

	// 调用位于 cmd/server 包中的 NewApp 函数来构建整个应用
	app, cleanup, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 使用 defer 来确保 cleanup 函数在 main 退出时被调用
	defer cleanup()

	// 确保后台任务在程序退出时被停止
	defer app.Stop()

	app.PrintBanner()

	if err := app.Run(); err != nil {
		log.Printf("应用运行失败: %v", err)
	}
}
