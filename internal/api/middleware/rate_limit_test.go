package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	l := newRateLimiter()
	window := 50 * time.Millisecond

	assert.True(t, l.Allow("ip:/vote", 2, window))
	assert.True(t, l.Allow("ip:/vote", 2, window))
	// 窗口内第三次被拒
	assert.False(t, l.Allow("ip:/vote", 2, window))

	// 其他键不受影响
	assert.True(t, l.Allow("ip2:/vote", 2, window))

	// 窗口滚动后计数归零
	time.Sleep(window + 10*time.Millisecond)
	assert.True(t, l.Allow("ip:/vote", 2, window))
}
