package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/response"
)

// Recovery 捕获 panic，记录日志并返回 SERVER_ERROR 信封
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic 已恢复",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Stack("stack"),
				)
				response.AbortWith(c, pkgerrors.Server())
			}
		}()
		c.Next()
	}
}

// NotFound 未匹配路由
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.AbortWith(c, pkgerrors.NotFound("接口不存在"))
	}
}
