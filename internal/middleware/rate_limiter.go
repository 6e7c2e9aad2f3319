package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fruitwarehouse/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter is a fixed-window limiter keyed by client IP. Counters live in
// Redis so every server instance shares them. A nil client or a non-positive
// limit disables the limiter. Redis failures let the request through.
func RateLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	if rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, c.ClientIP(), bucket)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		count := incr.Val()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(int64(limit)-count, 0), 10))
		if count > int64(limit) {
			windowEnd := time.Unix(0, (bucket+1)*int64(window))
			c.Header("Retry-After", strconv.Itoa(int(time.Until(windowEnd).Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(http.StatusTooManyRequests, "Too many requests, try again shortly", c.Request.URL.Path))
			return
		}
		c.Next()
	}
}
