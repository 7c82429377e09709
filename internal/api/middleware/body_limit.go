package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/response"
)

// ErrBodyTooLarge 请求体超过上限
var ErrBodyTooLarge = pkgerrors.PayloadTooLarge("请求体过大")

// BodyLimit 全局请求体大小限制中间件
// 声明长度超限的请求直接拒绝；未声明长度的请求在读取时由 MaxBytesReader 截断，
// 绑定阶段读到 *http.MaxBytesError 时由 handler 转换为 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.AbortWith(c, ErrBodyTooLarge)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
