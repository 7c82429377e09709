package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
)

// QuoteFilter 报价列表筛选条件
type QuoteFilter struct {
	ClientID string
	Status   model.QuoteStatus
	Page
}

// QuoteRepository 报价数据访问接口
type QuoteRepository interface {
	Create(ctx context.Context, q *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]model.Quote, int64, error)
	Update(ctx context.Context, q *model.Quote) error
	// UpdateStatusFrom 仅当当前状态仍为 from 时写入新的状态字段
	UpdateStatusFrom(ctx context.Context, q *model.Quote, from model.QuoteStatus) error
	Delete(ctx context.Context, q *model.Quote, deletedBy string) error
}

type quoteRepo struct {
	db *gorm.DB
}

// NewQuoteRepo 创建 QuoteRepository 实例
func NewQuoteRepo(db *gorm.DB) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *model.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quoteRepo) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	var q model.Quote
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", id).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepo) List(ctx context.Context, filter QuoteFilter) ([]model.Quote, int64, error) {
	var quotes []model.Quote
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Quote{})
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
		Find(&quotes).Error; err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *model.Quote) error {
	return updateWithVersion(r.db.WithContext(ctx), q, map[string]interface{}{
		"client_id":   q.ClientID,
		"title":       q.Title,
		"description": q.Description,
		"amount":      q.Amount,
		"valid_until": q.ValidUntil,
		"status":      q.Status,
		"status_text": q.StatusText,
		"project_id":  q.ProjectID,
		"items":       q.Items,
		"notes":       q.Notes,
	})
}

func (r *quoteRepo) UpdateStatusFrom(ctx context.Context, q *model.Quote, from model.QuoteStatus) error {
	return updateWithVersion(r.db.WithContext(ctx).Where("status = ?", from), q, map[string]interface{}{
		"status":       q.Status,
		"status_text":  q.StatusText,
		"confirmed_at": q.ConfirmedAt,
	})
}

func (r *quoteRepo) Delete(ctx context.Context, q *model.Quote, deletedBy string) error {
	return softDeleteWithVersion(
		r.db.WithContext(ctx).Where("status <> ?", model.QuoteConfirmed),
		q, deletedBy,
	)
}
