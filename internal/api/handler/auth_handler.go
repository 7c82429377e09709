package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, result)
}

// Register 客户自助注册
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, result)
}

// Logout 注销当前 Token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetCaller(c); !ok {
		return
	}

	var (
		jti       string
		expiresAt time.Time
	)
	if claims := tokenClaims(c); claims != nil {
		jti = claims.ID
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{})
}

// Session 当前会话
// GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	response.OK(c, h.authSvc.Session(user))
}
