package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/domain"
	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrTempWorkNotFound = pkgerrors.NotFound("临时施工申请不存在")

// TempWorkService 临时施工业务接口
type TempWorkService interface {
	List(ctx context.Context, req *dto.TempWorkListRequest, caller Caller) (*dto.PageResult[model.TempWork], error)
	Get(ctx context.Context, id string, caller Caller) (*model.TempWork, error)
	Create(ctx context.Context, req *dto.CreateTempWorkRequest, caller Caller) (*model.TempWork, error)
	Update(ctx context.Context, id string, req *dto.UpdateTempWorkRequest, caller Caller) (*model.TempWork, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type tempWorkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTempWorkService 创建 TempWorkService 实例
func NewTempWorkService(repo *repository.Repository, logger *zap.Logger) TempWorkService {
	return &tempWorkService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *tempWorkService) List(ctx context.Context, req *dto.TempWorkListRequest, caller Caller) (*dto.PageResult[model.TempWork], error) {
	status := model.TempWorkStatus(req.Status)
	if status != "" && !status.Valid() {
		return nil, pkgerrors.Validation("status", "无效的施工状态")
	}

	list, total, err := s.repo.TempWork.List(ctx, repository.TempWorkFilter{
		ClientID: caller.scopeClient(req.ClientID),
		Status:   status,
		Page:     repository.Page{Offset: req.GetOffset(), Limit: req.GetLimit()},
	})
	if err != nil {
		s.logger.Error("查询临时施工列表失败", zap.Error(err))
		return nil, err
	}
	return dto.NewPageResult(list, total, &req.PaginationRequest), nil
}

func (s *tempWorkService) Get(ctx context.Context, id string, caller Caller) (*model.TempWork, error) {
	tw, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(tw.ClientID) {
		return nil, pkgerrors.ErrNoPermission
	}
	return tw, nil
}

// ────────────────────── Create ──────────────────────

// Create 客户提交临时施工申请，状态固定为待审核
func (s *tempWorkService) Create(ctx context.Context, req *dto.CreateTempWorkRequest, caller Caller) (*model.TempWork, error) {
	workType := model.WorkType(req.WorkType)
	if !workType.Valid() {
		return nil, pkgerrors.Validation("workType", "无效的施工类型")
	}
	if err := domain.ValidateTempWorkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	tw := &model.TempWork{
		ClientID:    caller.ID,
		WorkType:    workType,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
		Status:      model.TempWorkPendingReview,
		Workers:     orEmpty(req.Workers),
	}
	if err := s.repo.TempWork.Create(ctx, tw); err != nil {
		s.logger.Error("创建临时施工申请失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("临时施工申请已提交", zap.String("temp_work_id", tw.TempWorkID), zap.String("client_id", tw.ClientID))
	return tw, nil
}

// ────────────────────── Update ──────────────────────

// Update 员工审批或修改临时施工申请，每次写入都重新校验起止时间
func (s *tempWorkService) Update(ctx context.Context, id string, req *dto.UpdateTempWorkRequest, caller Caller) (*model.TempWork, error) {
	tw, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WorkType != nil {
		workType := model.WorkType(*req.WorkType)
		if !workType.Valid() {
			return nil, pkgerrors.Validation("workType", "无效的施工类型")
		}
		tw.WorkType = workType
	}
	if req.Location != nil {
		tw.Location = *req.Location
	}
	if req.StartDate != nil {
		tw.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		tw.EndDate = *req.EndDate
	}
	if req.Description != nil {
		tw.Description = *req.Description
	}
	if req.Workers != nil {
		tw.Workers = req.Workers
	}
	if err := domain.ValidateTempWorkDates(tw.StartDate, tw.EndDate); err != nil {
		return nil, err
	}

	var comments string
	if req.ApprovalComments != nil {
		comments = *req.ApprovalComments
	}
	if req.Status != nil {
		if err := domain.ApplyTempWorkStatus(tw, model.TempWorkStatus(*req.Status), caller.ID, comments); err != nil {
			return nil, err
		}
	} else if req.ApprovalComments != nil {
		tw.ApprovalComments = comments
	}

	if err := s.repo.TempWork.Update(ctx, tw); err != nil {
		logWriteErr(s.logger, "更新临时施工申请失败", id, err)
		return nil, err
	}
	s.logger.Info("临时施工申请已更新",
		zap.String("id", id),
		zap.String("status", string(tw.Status)),
		zap.String("updated_by", caller.ID),
	)
	return tw, nil
}

// ────────────────────── Delete ──────────────────────

func (s *tempWorkService) Delete(ctx context.Context, id string, caller Caller) error {
	tw, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.TempWork.Delete(ctx, tw, caller.ID); err != nil {
		logWriteErr(s.logger, "删除临时施工申请失败", id, err)
		return err
	}
	return nil
}

// ── 辅助函数 ──

func (s *tempWorkService) get(ctx context.Context, id string) (*model.TempWork, error) {
	tw, err := s.repo.TempWork.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTempWorkNotFound
		}
		s.logger.Error("查询临时施工申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return tw, nil
}
