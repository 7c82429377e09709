package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/pkg/jwt"
)

// TokenBlacklist 登出 Token 黑名单
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Session(user *model.User) *dto.SessionResponse
}

type authService struct {
	users     UserService
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例，blacklist 为 nil 时登出只由客户端丢弃 Token
func NewAuthService(
	users UserService,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:     users,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// 1. 校验凭证
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发 Token
	return s.issue(user)
}

// Register 公开注册只创建客户账号
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.users.Create(ctx, &dto.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      string(model.RoleClient),
		Company:   req.Company,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Session(user *model.User) *dto.SessionResponse {
	return &dto.SessionResponse{IsAuthenticated: true, User: PublicProfile(user)}
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwtMgr.Issue(user.UserID, string(user.Role))
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}
	return &dto.AuthResponse{User: PublicProfile(user), Token: token}, nil
}
