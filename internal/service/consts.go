package service

import (
	"math/rand"
	"time"
)

const (
	// 每个信号源最多取这么多
	PageSize = 50
	// 好友推荐固定条数
	RecommendationPageSize = 10
	// 单个下游读的超时，超时只丢该来源
	flowReadTimeout = 2 * time.Second
)

const (
	CacheKeyPostDetail   = "post:detail:%d"
	CacheKeyUserProfile  = "user:profile:%d"
	CacheKeyPopularPosts = "posts:popular"
	CacheNullPlaceholder = "NULL"
)

// 缓存过期加抖动，避免同时失效
func getRandomExpire(base time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(base / 5)))
	return base + jitter
}
