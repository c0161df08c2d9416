/*
 * @Description: 缓存键常量
 * @Author: 安知鱼
 * @Date: 2026-03-18 16:56:08
 * @LastEditTime: 2026-03-21 16:45:26
 * @LastEditors: 安知鱼
 */
package constant

// 缓存键
const (
	// CacheKeyPostList 保存完整的已发布文章列表
	CacheKeyPostList = "gists-list"
	// CacheKeyPostPrefix 加上 gist ID 保存单篇文章
	CacheKeyPostPrefix = "gist-"
)

// PostCacheKey 返回单篇文章的缓存键
func PostCacheKey(id string) string {
	return CacheKeyPostPrefix + id
}
