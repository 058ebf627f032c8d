package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/voxa-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitWindow is 120 seconds
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 300
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked
	BlockedIPDuration = 15 * time.Minute
)

// RateLimiter counts requests per client IP in a fixed Redis window and blocks IPs that
// exceed it. Redis failures let the request through.
type RateLimiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
	block  time.Duration
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb, max: RateLimitMaxRequests, window: RateLimitWindow, block: BlockedIPDuration}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientip.FromRequest(r)
		blockedKey := BlockedIPKeyPrefix + ip

		blocked, err := l.rdb.Exists(ctx, blockedKey).Result()
		if err == nil && blocked > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.block.Seconds())))
			writeError(w, http.StatusTooManyRequests, errorBody{Error: "Too many requests. Please try again later."})
			return
		}

		key := RateLimitKeyPrefix + ip
		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(ctx, key, l.window)
		}

		if count > l.max {
			if err := l.rdb.Set(ctx, blockedKey, "1", l.block).Err(); err != nil {
				slog.WarnContext(ctx, "failed to block ip", "error", err)
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, errorBody{Error: fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", int(l.window.Seconds()))})
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.max, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(l.max-count, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.window).Unix(), 10))

		next.ServeHTTP(w, r)
	})
}
