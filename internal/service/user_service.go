package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/password"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound     = pkgerrors.NotFound("用户不存在")
	ErrEmailExists      = pkgerrors.Duplicate("该电子邮箱已被注册")
	ErrUserSelfDelete   = pkgerrors.Forbidden("不能删除自己")
	ErrRoleChangeDenied = pkgerrors.Forbidden("无权修改角色或权限级别")
	ErrUserGone         = pkgerrors.Unauthorized("用户不存在或已被删除")
)

// UserService 用户与凭证业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	Authenticate(ctx context.Context, email, plain string) (*model.User, error)
	VerifyPassword(user *model.User, plain string) bool
	Resolve(ctx context.Context, id string) (*model.User, error)
	Get(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) (*dto.PageResult[dto.UserResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type userService struct {
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) UserService {
	return &userService{repo: repo, hasher: hasher, logger: logger}
}

// PublicProfile 用户公开信息投影，不包含密码哈希
func PublicProfile(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.UserID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Role:            string(u.Role),
		PermissionLevel: u.PermissionLevel,
		Company:         u.Company,
		Phone:           u.Phone,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkRoleFields 客户必须提供公司名称，员工类角色必须提供权限级别
func checkRoleFields(u *model.User) error {
	if !u.Role.Valid() {
		return pkgerrors.Validation("role", "无效的角色")
	}
	if u.Role == model.RoleClient {
		if strings.TrimSpace(u.Company) == "" {
			return pkgerrors.Validation("company", "客户必须提供公司名称")
		}
		u.PermissionLevel = ""
		return nil
	}
	if strings.TrimSpace(u.PermissionLevel) == "" {
		return pkgerrors.Validation("permissionLevel", "员工必须提供权限级别")
	}
	u.Company = ""
	return nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	user := &model.User{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           normalizeEmail(req.Email),
		Role:            model.RoleClient,
		PermissionLevel: req.PermissionLevel,
		Company:         req.Company,
		Phone:           req.Phone,
	}
	if req.Role != "" {
		role, ok := model.ParseRole(req.Role)
		if !ok {
			return nil, pkgerrors.Validation("role", "无效的角色")
		}
		user.Role = role
	}
	if err := checkRoleFields(user); err != nil {
		return nil, err
	}

	// 检查邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, pkgerrors.Validation("password", err.Error())
		}
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发注册由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户已创建", zap.String("user_id", user.UserID), zap.String("role", string(user.Role)))
	return user, nil
}

// ────────────────────── Authenticate ──────────────────────

// Authenticate 按邮箱与密码校验凭证，用户不存在与密码错误返回同一错误
func (s *userService) Authenticate(ctx context.Context, email, plain string) (*model.User, error) {
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !s.VerifyPassword(user, plain) {
		return nil, pkgerrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) VerifyPassword(user *model.User, plain string) bool {
	return s.hasher.Verify(user.PasswordHash, plain)
}

// Resolve 按 Token 中的用户 ID 加载用户，已删除的用户视为未认证
func (s *userService) Resolve(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserGone
		}
		s.logger.Error("加载当前用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── Get / List ──────────────────────

func (s *userService) Get(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error) {
	if !caller.Owns(id) {
		return nil, pkgerrors.ErrNoPermission
	}
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := PublicProfile(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) (*dto.PageResult[dto.UserResponse], error) {
	users, total, err := s.repo.User.List(ctx, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetLimit(),
	})
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, PublicProfile(&users[i]))
	}
	return dto.NewPageResult(items, total, &req.PaginationRequest), nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error) {
	if !caller.Owns(id) {
		return nil, pkgerrors.ErrNoPermission
	}
	if !caller.IsAdmin() && (req.Role != nil || req.PermissionLevel != nil) {
		return nil, ErrRoleChangeDenied
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.Role != nil {
		role, ok := model.ParseRole(*req.Role)
		if !ok {
			return nil, pkgerrors.Validation("role", "无效的角色")
		}
		user.Role = role
	}
	if req.PermissionLevel != nil {
		user.PermissionLevel = *req.PermissionLevel
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if err := checkRoleFields(user); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			if errors.Is(err, password.ErrTooShort) {
				return nil, pkgerrors.Validation("password", err.Error())
			}
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		logWriteErr(s.logger, "更新用户失败", id, err)
		return nil, err
	}

	resp := PublicProfile(user)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, caller Caller) error {
	if id == caller.ID {
		return ErrUserSelfDelete
	}
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.User.Delete(ctx, user, caller.ID); err != nil {
		logWriteErr(s.logger, "删除用户失败", id, err)
		return err
	}
	s.logger.Info("用户已删除", zap.String("id", id), zap.String("deleted_by", caller.ID))
	return nil
}

// ── 辅助函数 ──

func (s *userService) get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}
