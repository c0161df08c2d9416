/*
 * @Description: 后台任务接口定义
 * @Author: 安知鱼
 * @Date: 2026-02-26 13:44:49
 * @LastEditTime: 2026-02-28 10:36:19
 * @LastEditors: 安知鱼
 */
package task

// Job 是可以被调度器或 worker 执行的后台任务，与 cron.Job 接口兼容。
type Job interface {
	Run()
	Name() string
}
