package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter connects the shared Redis client used by the rate
// limiters. With an empty addr, or when the ping fails, the client stays nil
// and the limiters fall back to the in-memory fixed window.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

type windowCounter struct {
	start time.Time
	count int64
}

// memoryWindow is the single-instance fallback when Redis is unavailable.
type memoryWindow struct {
	mu      sync.Mutex
	windows map[string]*windowCounter
}

var localWindows = &memoryWindow{windows: make(map[string]*windowCounter)}

func (m *memoryWindow) incr(key string, window time.Duration) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) > window {
		m.windows[key] = &windowCounter{start: now, count: 1}
		return 1
	}
	w.count++
	return w.count
}

// countRequest bumps the fixed-window counter for key, preferring Redis so
// the limit holds across instances.
func countRequest(key string, window time.Duration) (int64, bool) {
	if redisClient == nil {
		return localWindows.incr(key, window), true
	}
	ctx := context.Background()
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		// Redis down mid-flight: fall back rather than fail the request.
		return localWindows.incr(key, window), false
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}
	return val, true
}

// RateLimit limits requests per client IP using a fixed window.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()

		val, healthy := countRequest(key, window)
		if !healthy {
			c.Header("X-RateLimit-Error", "redis-error")
		}

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
