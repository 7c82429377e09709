package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
)

// TempWorkFilter 临时施工列表筛选条件
type TempWorkFilter struct {
	ClientID string
	Status   model.TempWorkStatus
	Page
}

// TempWorkRepository 临时施工数据访问接口
type TempWorkRepository interface {
	Create(ctx context.Context, tw *model.TempWork) error
	GetByID(ctx context.Context, id string) (*model.TempWork, error)
	List(ctx context.Context, filter TempWorkFilter) ([]model.TempWork, int64, error)
	Update(ctx context.Context, tw *model.TempWork) error
	Delete(ctx context.Context, tw *model.TempWork, deletedBy string) error
}

type tempWorkRepo struct {
	db *gorm.DB
}

// NewTempWorkRepo 创建 TempWorkRepository 实例
func NewTempWorkRepo(db *gorm.DB) TempWorkRepository {
	return &tempWorkRepo{db: db}
}

func (r *tempWorkRepo) Create(ctx context.Context, tw *model.TempWork) error {
	return r.db.WithContext(ctx).Create(tw).Error
}

func (r *tempWorkRepo) GetByID(ctx context.Context, id string) (*model.TempWork, error) {
	var tw model.TempWork
	err := r.db.WithContext(ctx).
		Where("temp_work_id = ?", id).
		First(&tw).Error
	if err != nil {
		return nil, err
	}
	return &tw, nil
}

func (r *tempWorkRepo) List(ctx context.Context, filter TempWorkFilter) ([]model.TempWork, int64, error) {
	var list []model.TempWork
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TempWork{})
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
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *tempWorkRepo) Update(ctx context.Context, tw *model.TempWork) error {
	return updateWithVersion(r.db.WithContext(ctx), tw, map[string]interface{}{
		"work_type":         tw.WorkType,
		"location":          tw.Location,
		"start_date":        tw.StartDate,
		"end_date":          tw.EndDate,
		"description":       tw.Description,
		"status":            tw.Status,
		"approved_by":       tw.ApprovedBy,
		"approval_comments": tw.ApprovalComments,
		"workers":           tw.Workers,
	})
}

func (r *tempWorkRepo) Delete(ctx context.Context, tw *model.TempWork, deletedBy string) error {
	return softDeleteWithVersion(r.db.WithContext(ctx), tw, deletedBy)
}
