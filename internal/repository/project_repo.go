package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
)

// ProjectFilter 项目列表筛选条件
type ProjectFilter struct {
	ClientID string
	Status   model.ProjectStatus
	Page
}

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, p *model.Project, deletedBy string) error
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Where("project_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Project{})
	if filter.ClientID != "" {
		db = db.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := filter.Page.apply(db).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return updateWithVersion(r.db.WithContext(ctx), p, map[string]interface{}{
		"title":           p.Title,
		"description":     p.Description,
		"location":        p.Location,
		"client_id":       p.ClientID,
		"start_date":      p.StartDate,
		"end_date":        p.EndDate,
		"actual_end_date": p.ActualEndDate,
		"status":          p.Status,
		"progress":        p.Progress,
		"budget":          p.Budget,
		"actual_cost":     p.ActualCost,
		"image_url":       p.ImageURL,
		"features":        p.Features,
		"tasks":           p.Tasks,
		"team":            p.Team,
		"gallery":         p.Gallery,
		"documents":       p.Documents,
	})
}

func (r *projectRepo) Delete(ctx context.Context, p *model.Project, deletedBy string) error {
	return softDeleteWithVersion(r.db.WithContext(ctx), p, deletedBy)
}
