package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/config"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
	"github.com/3Xbang/project/pkg/jwt"
	"github.com/3Xbang/project/pkg/password"
	"github.com/3Xbang/project/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Project  ProjectService
	Quote    QuoteService
	Repair   RepairService
	Receipt  ReceiptService
	TempWork TempWorkService
	Export   ExportService
	Calendar CalendarService
}

// NewService 创建 Service 聚合
// rdb 可为 nil：此时登出不写黑名单
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	users := NewUserService(repo, hasher, logger)

	var blacklist TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	return &Service{
		Auth:     NewAuthService(users, jwtMgr, blacklist, logger),
		User:     users,
		Project:  NewProjectService(repo, logger),
		Quote:    NewQuoteService(repo, logger),
		Repair:   NewRepairService(repo, logger),
		Receipt:  NewReceiptService(repo, logger),
		TempWork: NewTempWorkService(repo, logger),
		Export:   NewExportService(repo, logger),
		Calendar: NewCalendarService(repo, logger),
	}
}

// ── 调用方身份 ──

// Caller 当前请求的调用方，匿名访问时 ID 为空
type Caller struct {
	ID   string
	Role model.Role
}

// Anonymous 是否为未登录调用方
func (c Caller) Anonymous() bool { return c.ID == "" }

// IsAdmin 是否为管理员
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// IsClient 是否为客户
func (c Caller) IsClient() bool { return c.Role == model.RoleClient }

// Owns 调用方是否为记录所有者；管理员视为拥有所有记录
func (c Caller) Owns(ownerID string) bool {
	return c.IsAdmin() || (c.ID != "" && c.ID == ownerID)
}

// scopeClient 列表查询的客户范围：非管理员只能查看自己的记录
func (c Caller) scopeClient(requested string) string {
	if c.IsAdmin() {
		return requested
	}
	return c.ID
}

// ── 辅助函数 ──

// checkClientRef 校验引用的用户存在且为客户
func checkClientRef(ctx context.Context, repo *repository.Repository, logger *zap.Logger, field, id string) error {
	user, err := repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Validation(field, "客户不存在")
		}
		logger.Error("查询客户失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if user.Role != model.RoleClient {
		return pkgerrors.Validation(field, "关联用户不是客户")
	}
	return nil
}

// logWriteErr 乐观锁冲突属于正常的业务结果，不记错误日志
func logWriteErr(logger *zap.Logger, msg, id string, err error) {
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		return
	}
	logger.Error(msg, zap.String("id", id), zap.Error(err))
}

// orEmpty JSON 列写入空数组而不是 null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
