/*
 * @Description: 后台任务调度器，负责缓存预热
 * @Author: 安知鱼
 * @Date: 2026-02-12 11:35:45
 * @LastEditTime: 2026-02-14 09:39:13
 * @LastEditors: 安知鱼
 */
package task

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

const (
	workerCount   = 2
	jobQueueSize  = 16
	warmupJobName = "WarmPostsJob"
)

// Broker 是后台任务模块的核心协调者：
// cron 负责周期性任务，worker 池负责即时派发的任务。
type Broker struct {
	cron     *cron.Cron
	logger   *slog.Logger
	postSvc  gist.Service
	jobQueue chan Job
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewBroker 是 Broker 的构造函数。
func NewBroker(postSvc gist.Service) *Broker {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "task_broker")

	return newBroker(postSvc, logger)
}

func newBroker(postSvc gist.Service, logger *slog.Logger) *Broker {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		),
	)

	broker := &Broker{
		cron:     c,
		logger:   logger,
		postSvc:  postSvc,
		jobQueue: make(chan Job, jobQueueSize),
	}
	broker.startWorkerPool()

	return broker
}

// startWorkerPool 启动固定数量的 worker goroutine 来处理任务。
func (b *Broker) startWorkerPool() {
	b.logger.Info("Starting task worker pool", "concurrency", workerCount)

	chain := cron.NewChain(
		NewPanicRecoveryWrapper(b.logger),
		NewLoggingWrapper(b.logger),
	)

	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for job := range b.jobQueue {
				chain.Then(job).Run()
			}
			b.logger.Info("Worker stopped", "worker_id", workerID)
		}()
	}
}

// RegisterCronJobs 注册周期性任务。schedule 为空时不注册预热任务。
func (b *Broker) RegisterCronJobs(schedule string) error {
	if schedule == "" {
		b.logger.Info("Warm-up schedule is empty, skip registering periodic jobs")
		return nil
	}

	if _, err := b.cron.AddJob(schedule, NewWarmPostsJob(b.postSvc, b.logger)); err != nil {
		b.logger.Error("Failed to add 'WarmPostsJob'", slog.Any("error", err))
		return fmt.Errorf("注册任务 %s 失败: %w", warmupJobName, err)
	}
	b.logger.Info("-> Successfully registered 'WarmPostsJob'", "schedule", schedule)
	return nil
}

// Dispatch 将任务发送到队列中，队列已满或 broker 已停止时丢弃任务并返回 false。
func (b *Broker) Dispatch(job Job) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.logger.Warn("Broker stopped, job dropped", "job_name", job.Name())
		return false
	}

	select {
	case b.jobQueue <- job:
		return true
	default:
		b.logger.Warn("Job queue is full, job dropped", "job_name", job.Name())
		return false
	}
}

// DispatchWarmup 立即派发一次文章列表预热。
func (b *Broker) DispatchWarmup() bool {
	return b.Dispatch(NewWarmPostsJob(b.postSvc, b.logger))
}

// Start 启动 cron 调度器，并在后台预热一次缓存。
func (b *Broker) Start() {
	b.logger.Info("Task broker started.")
	b.cron.Start()
	b.DispatchWarmup()
}

// Stop 优雅地停止 cron 调度器和所有 worker，可以重复调用。
func (b *Broker) Stop() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.jobQueue)
	b.mu.Unlock()

	b.logger.Info("Stopping task broker...")
	ctx := b.cron.Stop()
	<-ctx.Done()
	b.wg.Wait()
	b.logger.Info("Task broker gracefully stopped.")
}
