/*
 * @Description: 文章列表缓存预热任务
 * @Author: 安知鱼
 * @Date: 2026-03-22 21:49:20
 * @LastEditTime: 2026-03-25 22:23:19
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// DefaultWarmTimeout 是单次预热允许的最长时间
const DefaultWarmTimeout = 2 * time.Minute

// WarmPostsJob 重新拉取 gist 列表并写入缓存，避免访客请求触发冷启动拉取。
type WarmPostsJob struct {
	postSvc gist.Service
	logger  *slog.Logger
	timeout time.Duration
}

// NewWarmPostsJob 是任务的构造函数。
func NewWarmPostsJob(postSvc gist.Service, logger *slog.Logger) *WarmPostsJob {
	return &WarmPostsJob{
		postSvc: postSvc,
		logger:  logger,
		timeout: DefaultWarmTimeout,
	}
}

// Name 方法返回任务的可读名称。
func (j *WarmPostsJob) Name() string {
	return "WarmPostsJob"
}

// Run 刷新文章列表缓存，失败时只记录日志，旧缓存保持不变。
func (j *WarmPostsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	count, err := j.postSvc.Refresh(ctx)
	if err != nil {
		j.logger.Error("刷新文章列表失败", slog.String("job_name", j.Name()), slog.Any("error", err))
		return
	}
	j.logger.Info("文章列表已刷新", slog.String("job_name", j.Name()), slog.Int("count", count))
}
