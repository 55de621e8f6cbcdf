package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/relicvault/pkg/configs"
)

// keyedLimiter 按键分桶的限流器集合；桶数超限时整体重置，
// 不维护逐键的最近访问时间.
type keyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

const (
	limiterSweepInterval = 10 * time.Minute
	limiterMaxEntries    = 10000
)

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	kl := &keyedLimiter{
		buckets: map[string]*rate.Limiter{},
		rps:     rate.Limit(rps),
		burst:   burst,
	}

	go kl.sweep()

	return kl
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.Lock()

	l, ok := kl.buckets[key]
	if !ok {
		l = rate.NewLimiter(kl.rps, kl.burst)
		kl.buckets[key] = l
	}

	kl.mu.Unlock()

	return l.Allow()
}

func (kl *keyedLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		kl.mu.Lock()

		if len(kl.buckets) > limiterMaxEntries {
			kl.buckets = map[string]*rate.Limiter{}
		}

		kl.mu.Unlock()
	}
}

// RateLimitMiddleware 基于配置限流；key 维度支持 global、ip 与 header:<Name>.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	keyMode := strings.ToLower(strings.TrimSpace(cfg.Key))

	if keyMode == "global" || keyMode == "" {
		limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !limiter.Allow() {
				rejectRateLimited(c)
				return
			}

			c.Next()
		}
	}

	kl := newKeyedLimiter(cfg.RPS, cfg.Burst)

	headerName := ""
	if strings.HasPrefix(keyMode, "header:") {
		headerName = strings.TrimSpace(cfg.Key)[len("header:"):]
	}

	return func(c *gin.Context) {
		key := ""
		if headerName != "" {
			key = c.GetHeader(headerName)
		}

		if key == "" {
			key = clientIP(c)
		}

		if key == "" {
			key = "unknown"
		}

		if !kl.allow(key) {
			rejectRateLimited(c)
			return
		}

		c.Next()
	}
}

func rejectRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	return c.Request.RemoteAddr
}
