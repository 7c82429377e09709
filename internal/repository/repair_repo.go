package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
)

// RepairFilter 维修申请列表筛选条件
type RepairFilter struct {
	ClientID string
	Status   model.RepairStatus
	// Scheduled 为 true 时只返回已排期的维修
	Scheduled bool
	Page
}

// RepairRepository 维修申请数据访问接口
type RepairRepository interface {
	Create(ctx context.Context, r *model.Repair) error
	GetByID(ctx context.Context, id string) (*model.Repair, error)
	List(ctx context.Context, filter RepairFilter) ([]model.Repair, int64, error)
	CountByStatus(ctx context.Context, clientID string) (map[model.RepairStatus]int64, error)
	Update(ctx context.Context, r *model.Repair) error
	Delete(ctx context.Context, r *model.Repair, deletedBy string) error
}

type repairRepo struct {
	db *gorm.DB
}

// NewRepairRepo 创建 RepairRepository 实例
func NewRepairRepo(db *gorm.DB) RepairRepository {
	return &repairRepo{db: db}
}

func (r *repairRepo) Create(ctx context.Context, repair *model.Repair) error {
	return r.db.WithContext(ctx).Create(repair).Error
}

func (r *repairRepo) GetByID(ctx context.Context, id string) (*model.Repair, error) {
	var repair model.Repair
	err := r.db.WithContext(ctx).
		Where("repair_id = ?", id).
		First(&repair).Error
	if err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *repairRepo) List(ctx context.Context, filter RepairFilter) ([]model.Repair, int64, error) {
	var repairs []model.Repair
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Repair{})
	if filter.ClientID != "" {
		db = db.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Scheduled {
		db = db.Where("scheduled_date IS NOT NULL")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := filter.Page.apply(db).
		Order("date DESC").
		Find(&repairs).Error; err != nil {
		return nil, 0, err
	}

	return repairs, total, nil
}

// CountByStatus 按状态统计某客户的维修申请数量
func (r *repairRepo) CountByStatus(ctx context.Context, clientID string) (map[model.RepairStatus]int64, error) {
	var rows []struct {
		Status model.RepairStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Repair{}).
		Select("status, COUNT(*) AS count").
		Where("client_id = ?", clientID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.RepairStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repairRepo) Update(ctx context.Context, repair *model.Repair) error {
	return updateWithVersion(r.db.WithContext(ctx), repair, map[string]interface{}{
		"title":          repair.Title,
		"description":    repair.Description,
		"date":           repair.Date,
		"location":       repair.Location,
		"priority":       repair.Priority,
		"status":         repair.Status,
		"assigned_to":    repair.AssignedTo,
		"scheduled_date": repair.ScheduledDate,
		"completed_date": repair.CompletedDate,
		"images":         repair.Images,
		"feedback":       repair.Feedback,
		"notes":          repair.Notes,
	})
}

func (r *repairRepo) Delete(ctx context.Context, repair *model.Repair, deletedBy string) error {
	return softDeleteWithVersion(r.db.WithContext(ctx), repair, deletedBy)
}
