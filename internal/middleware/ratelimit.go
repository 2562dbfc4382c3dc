package middleware

import (
    "sync"
    "time"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/d60-Lab/pressroom/pkg/response"
)

const (
    limiterTTL        = 10 * time.Minute
    limiterMaxEntries = 10000
)

type limiterEntry struct {
    lim      *rate.Limiter
    lastSeen time.Time
}

// ipLimiters 按 IP 的令牌桶表。条目数触顶时清掉闲置超过 ttl 的桶，
// 防止被海量源地址撑爆内存
type ipLimiters struct {
    mu         sync.Mutex
    entries    map[string]*limiterEntry
    limit      rate.Limit
    burst      int
    ttl        time.Duration
    maxEntries int
}

func newIPLimiters(limit rate.Limit, burst int, ttl time.Duration, maxEntries int) *ipLimiters {
    return &ipLimiters{
        entries:    make(map[string]*limiterEntry),
        limit:      limit,
        burst:      burst,
        ttl:        ttl,
        maxEntries: maxEntries,
    }
}

func (l *ipLimiters) get(ip string, now time.Time) *rate.Limiter {
    l.mu.Lock()
    defer l.mu.Unlock()
    e, ok := l.entries[ip]
    if !ok {
        if len(l.entries) >= l.maxEntries {
            l.sweepLocked(now)
        }
        e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
        l.entries[ip] = e
    }
    e.lastSeen = now
    return e.lim
}

func (l *ipLimiters) sweepLocked(now time.Time) {
    for ip, e := range l.entries {
        if now.Sub(e.lastSeen) > l.ttl {
            delete(l.entries, ip)
        }
    }
}

func (l *ipLimiters) size() int {
    l.mu.Lock()
    defer l.mu.Unlock()
    return len(l.entries)
}

// RateLimit 按客户端 IP 的令牌桶限流，评论入口用
func RateLimit(perMinute, burst int) gin.HandlerFunc {
    if perMinute <= 0 {
        perMinute = 30
    }
    if burst <= 0 {
        burst = 10
    }
    limiters := newIPLimiters(rate.Limit(float64(perMinute)/60.0), burst, limiterTTL, limiterMaxEntries)
    return func(c *gin.Context) {
        if !limiters.get(c.ClientIP(), time.Now()).Allow() {
            response.TooManyRequests(c, "too many requests, slow down")
            c.Abort()
            return
        }
        c.Next()
    }
}
