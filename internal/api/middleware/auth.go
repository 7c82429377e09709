package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/jwt"
	"github.com/3Xbang/project/pkg/response"
)

// 上下文键
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextUser   = "user"
	ContextClaims = "claims"
)

// TokenParser 解析 Access Token
type TokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

// UserResolver 按 ID 加载仍然存在的用户
type UserResolver interface {
	Resolve(ctx context.Context, id string) (*model.User, error)
}

// Blacklist 查询已注销的 Token
type Blacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

var (
	errTokenInvalid = pkgerrors.Unauthorized("Token 无效或已过期")
	errTokenRevoked = pkgerrors.Unauthorized("Token 已注销")
)

// Protect 认证中间件
// 从 Authorization: Bearer <token> 中提取 Token，校验签名、黑名单，并加载当前用户。
// 角色以数据库中的用户记录为准，Token 内的角色只用于签发。
// blacklist 为 nil 时跳过黑名单检查
func Protect(tokens TokenParser, users UserResolver, blacklist Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.AbortWith(c, pkgerrors.ErrNotAuthenticated)
			return
		}

		if err := authenticate(c, raw, tokens, users, blacklist); err != nil {
			response.Fail(c, err)
			return
		}

		c.Next()
	}
}

// OptionalAuth 可选认证
// 携带有效 Token 时注入身份，否则以匿名身份继续
func OptionalAuth(tokens TokenParser, users UserResolver, blacklist Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			_ = authenticate(c, raw, tokens, users, blacklist)
		}
		c.Next()
	}
}

// Authorize 角色权限中间件，须挂在 Protect 之后
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextRole)
		if !exists {
			response.AbortWith(c, pkgerrors.ErrNotAuthenticated)
			return
		}

		role, _ := v.(model.Role)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.AbortWith(c, pkgerrors.ErrNoPermission)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func authenticate(c *gin.Context, raw string, tokens TokenParser, users UserResolver, blacklist Blacklist) error {
	claims, err := tokens.Parse(raw)
	if err != nil {
		return errTokenInvalid
	}

	ctx := c.Request.Context()
	if blacklist != nil && claims.ID != "" {
		// Redis 出错时降级放行
		if revoked, err := blacklist.IsBlacklisted(ctx, claims.ID); err == nil && revoked {
			return errTokenRevoked
		}
	}

	user, err := users.Resolve(ctx, claims.UserID)
	if err != nil {
		return err
	}

	c.Set(ContextUserID, user.UserID)
	c.Set(ContextRole, user.Role)
	c.Set(ContextUser, user)
	c.Set(ContextClaims, claims)
	return nil
}
