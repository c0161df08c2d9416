/*
 * @Description: 缓存条目模型
 * @Author: 安知鱼
 * @Date: 2026-02-01 23:53:37
 * @LastEditTime: 2026-02-06 16:18:00
 * @LastEditors: 安知鱼
 */
package model

import "encoding/json"

// CacheEntry 是缓存中保存的一条记录。
// Timestamp 为写入时刻的 Unix 毫秒数，Payload 为序列化后的数据。
type CacheEntry struct {
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"data"`
}
