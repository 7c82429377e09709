package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
)

// ReceiptFilter 收据列表筛选条件
type ReceiptFilter struct {
	ClientID string
	Page
}

// ReceiptRepository 收据数据访问接口
type ReceiptRepository interface {
	Create(ctx context.Context, r *model.Receipt) error
	GetByID(ctx context.Context, id string) (*model.Receipt, error)
	List(ctx context.Context, filter ReceiptFilter) ([]model.Receipt, int64, error)
	Update(ctx context.Context, r *model.Receipt) error
	Delete(ctx context.Context, r *model.Receipt, deletedBy string) error
}

type receiptRepo struct {
	db *gorm.DB
}

// NewReceiptRepo 创建 ReceiptRepository 实例
func NewReceiptRepo(db *gorm.DB) ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, receipt *model.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepo) GetByID(ctx context.Context, id string) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", id).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepo) List(ctx context.Context, filter ReceiptFilter) ([]model.Receipt, int64, error) {
	var receipts []model.Receipt
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Receipt{})
	if filter.ClientID != "" {
		db = db.Where("client_id = ?", filter.ClientID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := filter.Page.apply(db).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, total, nil
}

// Update 收据编号创建后不可变，不在更新列中
func (r *receiptRepo) Update(ctx context.Context, receipt *model.Receipt) error {
	return updateWithVersion(r.db.WithContext(ctx), receipt, map[string]interface{}{
		"client_id":      receipt.ClientID,
		"project_id":     receipt.ProjectID,
		"amount":         receipt.Amount,
		"payment_method": receipt.PaymentMethod,
		"payment_date":   receipt.PaymentDate,
		"description":    receipt.Description,
		"items":          receipt.Items,
		"tax_rate":       receipt.TaxRate,
		"tax_amount":     receipt.TaxAmount,
		"total_amount":   receipt.TotalAmount,
		"notes":          receipt.Notes,
	})
}

func (r *receiptRepo) Delete(ctx context.Context, receipt *model.Receipt, deletedBy string) error {
	return softDeleteWithVersion(r.db.WithContext(ctx), receipt, deletedBy)
}
