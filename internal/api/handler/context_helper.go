package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3Xbang/project/internal/api/middleware"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/service"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/jwt"
	"github.com/3Xbang/project/pkg/response"
)

// callerOf 读取当前调用方；未认证时返回匿名调用方
func callerOf(c *gin.Context) service.Caller {
	role, _ := c.Get(middleware.ContextRole)
	r, _ := role.(model.Role)
	return service.Caller{ID: c.GetString(middleware.ContextUserID), Role: r}
}

// MustGetCaller 从 Gin 上下文中提取已认证的调用方。
// 认证中间件未注入身份时写入 401 响应，调用方应在 ok=false 时直接 return。
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	caller := callerOf(c)
	if caller.Anonymous() {
		response.AbortWith(c, pkgerrors.ErrNotAuthenticated)
		return caller, false
	}
	return caller, true
}

// MustGetUser 提取认证中间件加载的用户记录
func MustGetUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(middleware.ContextUser)
	user, ok := v.(*model.User)
	if !exists || !ok || user == nil {
		response.AbortWith(c, pkgerrors.ErrNotAuthenticated)
		return nil, false
	}
	return user, true
}

// ErrResourceNotFound 路径中的 ID 不是合法 UUID，不可能对应任何记录
var ErrResourceNotFound = pkgerrors.NotFound("资源不存在")

// pathID 读取并校验 :id 路径参数，非法时写入 404 响应
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.AbortWith(c, ErrResourceNotFound)
		return "", false
	}
	return id, true
}

// tokenClaims 当前请求的 Token 声明，可能为 nil
func tokenClaims(c *gin.Context) *jwt.Claims {
	v, _ := c.Get(middleware.ContextClaims)
	claims, _ := v.(*jwt.Claims)
	return claims
}
