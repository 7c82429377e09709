package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/domain"
	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrRepairNotFound = pkgerrors.NotFound("维修申请不存在")

// RepairService 维修申请业务接口
type RepairService interface {
	List(ctx context.Context, req *dto.RepairListRequest, caller Caller) (*dto.PageResult[model.Repair], error)
	Get(ctx context.Context, id string, caller Caller) (*model.Repair, error)
	Create(ctx context.Context, req *dto.CreateRepairRequest, caller Caller) (*model.Repair, error)
	Update(ctx context.Context, id string, req *dto.UpdateRepairRequest, caller Caller) (*model.Repair, error)
	Delete(ctx context.Context, id string, caller Caller) error
	Stats(ctx context.Context, caller Caller) (*dto.RepairStatsResponse, error)
	Feedback(ctx context.Context, id string, req *dto.RepairFeedbackRequest, caller Caller) (*model.Repair, error)
}

type repairService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRepairService 创建 RepairService 实例
func NewRepairService(repo *repository.Repository, logger *zap.Logger) RepairService {
	return &repairService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *repairService) List(ctx context.Context, req *dto.RepairListRequest, caller Caller) (*dto.PageResult[model.Repair], error) {
	repairs, total, err := s.repo.Repair.List(ctx, repository.RepairFilter{
		ClientID: caller.scopeClient(req.ClientID),
		Status:   model.RepairStatus(req.Status),
		Page:     repository.Page{Offset: req.GetOffset(), Limit: req.GetLimit()},
	})
	if err != nil {
		s.logger.Error("查询维修列表失败", zap.Error(err))
		return nil, err
	}
	return dto.NewPageResult(repairs, total, &req.PaginationRequest), nil
}

func (s *repairService) Get(ctx context.Context, id string, caller Caller) (*model.Repair, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(r.ClientID) {
		return nil, pkgerrors.ErrNoPermission
	}
	return r, nil
}

// ────────────────────── Create ──────────────────────

// Create 客户提交维修申请，所有者固定为调用方，状态固定为 pending
func (s *repairService) Create(ctx context.Context, req *dto.CreateRepairRequest, caller Caller) (*model.Repair, error) {
	r := &model.Repair{
		ClientID:    caller.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Priority:    model.RepairPriority(req.Priority),
		Images:      orEmpty(req.Images),
	}
	if req.Date != nil {
		r.Date = *req.Date
	}
	if err := domain.NewRepairDefaults(r, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Repair.Create(ctx, r); err != nil {
		s.logger.Error("创建维修申请失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("维修申请已提交", zap.String("repair_id", r.RepairID), zap.String("client_id", r.ClientID))
	return r, nil
}

// ────────────────────── Update ──────────────────────

func (s *repairService) Update(ctx context.Context, id string, req *dto.UpdateRepairRequest, caller Caller) (*model.Repair, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	if req.Title != nil {
		r.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.Priority != nil {
		p := model.RepairPriority(*req.Priority)
		if !p.Valid() {
			return nil, pkgerrors.Validation("priority", "无效的优先级")
		}
		r.Priority = p
	}
	if req.Images != nil {
		r.Images = req.Images
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}

	switch {
	case req.AssignedTo != nil:
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
		domain.ApplyRepairAssignment(r, *req.AssignedTo, req.ScheduledDate, now)
	case req.ScheduledDate != nil:
		r.ScheduledDate = req.ScheduledDate
	}

	if req.Status != nil {
		if err := domain.ApplyRepairStatus(r, model.RepairStatus(*req.Status), now); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Repair.Update(ctx, r); err != nil {
		logWriteErr(s.logger, "更新维修申请失败", id, err)
		return nil, err
	}
	s.logger.Info("维修申请已更新",
		zap.String("id", id),
		zap.String("status", string(r.Status)),
		zap.String("updated_by", caller.ID),
	)
	return r, nil
}

// ────────────────────── Delete ──────────────────────

func (s *repairService) Delete(ctx context.Context, id string, caller Caller) error {
	r, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Repair.Delete(ctx, r, caller.ID); err != nil {
		logWriteErr(s.logger, "删除维修申请失败", id, err)
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *repairService) Stats(ctx context.Context, caller Caller) (*dto.RepairStatsResponse, error) {
	counts, err := s.repo.Repair.CountByStatus(ctx, caller.ID)
	if err != nil {
		s.logger.Error("统计维修申请失败", zap.String("client_id", caller.ID), zap.Error(err))
		return nil, err
	}
	return &dto.RepairStatsResponse{
		Pending:    counts[model.RepairPending],
		InProgress: counts[model.RepairInProgress],
		Completed:  counts[model.RepairCompleted],
	}, nil
}

// ────────────────────── Feedback ──────────────────────

// Feedback 客户对已完成的维修提交评价，重复提交覆盖之前的评价
func (s *repairService) Feedback(ctx context.Context, id string, req *dto.RepairFeedbackRequest, caller Caller) (*model.Repair, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.ClientID != caller.ID {
		return nil, pkgerrors.ErrNoPermission
	}
	if err := domain.ApplyRepairFeedback(r, req.Rating, req.Comment, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Repair.Update(ctx, r); err != nil {
		logWriteErr(s.logger, "保存维修评价失败", id, err)
		return nil, err
	}
	return r, nil
}

// ── 辅助函数 ──

func (s *repairService) get(ctx context.Context, id string) (*model.Repair, error) {
	r, err := s.repo.Repair.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepairNotFound
		}
		s.logger.Error("查询维修申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return r, nil
}

// checkAssignee 维修只能指派给员工类账号
func (s *repairService) checkAssignee(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Validation("assignedTo", "指派的员工不存在")
		}
		return err
	}
	if !user.Role.IsStaff() {
		return pkgerrors.Validation("assignedTo", "维修只能指派给员工")
	}
	return nil
}
