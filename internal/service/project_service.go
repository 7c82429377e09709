package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/repository"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

var ErrProjectNotFound = pkgerrors.NotFound("项目不存在")

// ProjectService 项目业务接口
// 匿名调用方得到 dto.ProjectSummary，已登录调用方得到完整的 model.Project
type ProjectService interface {
	List(ctx context.Context, req *dto.ProjectListRequest, caller Caller) (*dto.PageResult[any], error)
	Get(ctx context.Context, id string, caller Caller) (any, error)
	Create(ctx context.Context, req *dto.CreateProjectRequest, caller Caller) (*model.Project, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, caller Caller) (*model.Project, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *projectService) List(ctx context.Context, req *dto.ProjectListRequest, caller Caller) (*dto.PageResult[any], error) {
	filter := repository.ProjectFilter{
		Status: model.ProjectStatus(req.Status),
		Page:   repository.Page{Offset: req.GetOffset(), Limit: req.GetLimit()},
	}
	// 客户只能看到自己的项目
	if caller.IsClient() {
		filter.ClientID = caller.ID
	}

	projects, total, err := s.repo.Project.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]any, 0, len(projects))
	for i := range projects {
		if caller.Anonymous() {
			items = append(items, dto.NewProjectSummary(&projects[i]))
		} else {
			items = append(items, projects[i])
		}
	}
	return dto.NewPageResult(items, total, &req.PaginationRequest), nil
}

func (s *projectService) Get(ctx context.Context, id string, caller Caller) (any, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Anonymous() {
		return dto.NewProjectSummary(p), nil
	}
	if caller.IsClient() && p.ClientID != caller.ID {
		return nil, pkgerrors.ErrNoPermission
	}
	return p, nil
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest, caller Caller) (*model.Project, error) {
	if err := checkClientRef(ctx, s.repo, s.logger, "client", req.Client); err != nil {
		return nil, err
	}

	p := &model.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		ClientID:    req.Client,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      model.ProjectStatus(req.Status),
		Progress:    req.Progress,
		Budget:      req.Budget,
		ActualCost:  req.ActualCost,
		ImageURL:    req.ImageURL,
		Features:    orEmpty(req.Features),
		Tasks:       orEmpty(req.Tasks),
		Team:        orEmpty(req.Team),
		Gallery:     orEmpty(req.Gallery),
		Documents:   orEmpty(req.Documents),
	}
	if p.Status == "" {
		p.Status = model.ProjectPlanned
	}
	if p.ImageURL == "" {
		p.ImageURL = model.DefaultProjectImage
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.repo.Project.Create(ctx, p); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("项目已创建", zap.String("project_id", p.ProjectID), zap.String("created_by", caller.ID))
	return p, nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, caller Caller) (*model.Project, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Client != nil && *req.Client != p.ClientID {
		if err := checkClientRef(ctx, s.repo, s.logger, "client", *req.Client); err != nil {
			return nil, err
		}
		p.ClientID = *req.Client
	}
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}
	if req.ActualEndDate != nil {
		p.ActualEndDate = req.ActualEndDate
	}
	if req.Status != nil {
		p.Status = model.ProjectStatus(*req.Status)
	}
	if req.Progress != nil {
		p.Progress = *req.Progress
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}
	if req.ActualCost != nil {
		p.ActualCost = *req.ActualCost
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.Tasks != nil {
		p.Tasks = req.Tasks
	}
	if req.Team != nil {
		p.Team = req.Team
	}
	if req.Gallery != nil {
		p.Gallery = req.Gallery
	}
	if req.Documents != nil {
		p.Documents = req.Documents
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.repo.Project.Update(ctx, p); err != nil {
		logWriteErr(s.logger, "更新项目失败", id, err)
		return nil, err
	}
	return p, nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, id string, caller Caller) error {
	p, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Project.Delete(ctx, p, caller.ID); err != nil {
		logWriteErr(s.logger, "删除项目失败", id, err)
		return err
	}
	s.logger.Info("项目已删除", zap.String("id", id), zap.String("deleted_by", caller.ID))
	return nil
}

// ── 辅助函数 ──

func (s *projectService) get(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func validateProject(p *model.Project) error {
	if !p.Status.Valid() {
		return pkgerrors.Validation("status", "无效的项目状态")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return pkgerrors.Validation("progress", "进度必须在0到100之间")
	}
	if p.EndDate.Before(p.StartDate) {
		return pkgerrors.Validation("endDate", "结束日期不能早于开始日期")
	}
	if p.ActualEndDate != nil && p.ActualEndDate.Before(p.StartDate) {
		return pkgerrors.Validation("actualEndDate", "实际结束日期不能早于开始日期")
	}
	if p.Status == model.ProjectCompleted && p.ActualEndDate == nil {
		done := time.Now().UTC()
		p.ActualEndDate = &done
	}
	return nil
}
