package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

// 只实现限频用到的两个命令，其余沿用内嵌接口
type fakeCounter struct {
	redis.Cmdable
	mu     sync.Mutex
	counts map[string]int64
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func newRateLimitRouter(counter redis.Cmdable, limit int, withUser bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if withUser {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", uint(7))
			c.Next()
		})
	}
	r.Use(RateLimit(counter, limit))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doPing(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	return w
}

// 鉴权后的请求超过限额要被 429 拦下
func TestRateLimitBlocksOverLimit(t *testing.T) {
	r := newRateLimitRouter(&fakeCounter{}, 2, true)

	assert.Equal(t, http.StatusOK, doPing(r).Code)
	assert.Equal(t, http.StatusOK, doPing(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, doPing(r).Code)
}

func TestRateLimitSetsHeaders(t *testing.T) {
	r := newRateLimitRouter(&fakeCounter{}, 5, true)

	w := doPing(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

// 没过鉴权的链路不该被用户级限频碰到
func TestRateLimitIgnoresAnonymous(t *testing.T) {
	counter := &fakeCounter{}
	r := newRateLimitRouter(counter, 1, false)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doPing(r).Code)
	}
	assert.Empty(t, counter.counts)
}
