package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/response"
)

// ErrRateLimited 请求过于频繁
var ErrRateLimited = pkgerrors.TooManyRequests("请求过于频繁，请稍后再试")

// Limiter 滑动窗口计数
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 与路由限流
// limiter 为 nil 或 Redis 出错时降级放行
func RateLimit(limiter Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if !allowed {
			response.AbortWith(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
