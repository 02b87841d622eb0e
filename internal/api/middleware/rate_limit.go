package middleware

import (
	"Lodestone/internal/pkg/response"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimiter 进程内固定窗口限流器，键为 客户端IP+路由
// 窗口切换时计数归零，旧窗口条目惰性回收
type rateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{windows: make(map[string]*window)}
}

// Allow 在当前窗口内计数，超出 limit 返回 false
func (l *rateLimiter) Allow(key string, limit int, size time.Duration) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= size {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

var limiter = newRateLimiter()

// RateLimit 对单个路由按 客户端IP 做固定窗口限流
func RateLimit(limit int, windowSeconds int) gin.HandlerFunc {
	size := time.Duration(windowSeconds) * time.Second
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		if !limiter.Allow(key, limit, size) {
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}
		c.Next()
	}
}
