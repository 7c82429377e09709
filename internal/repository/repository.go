package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/3Xbang/project/internal/model"
	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User     UserRepository
	Project  ProjectRepository
	Quote    QuoteRepository
	Repair   RepairRepository
	Receipt  ReceiptRepository
	TempWork TempWorkRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Project:  NewProjectRepo(db),
		Quote:    NewQuoteRepo(db),
		Repair:   NewRepairRepo(db),
		Receipt:  NewReceiptRepo(db),
		TempWork: NewTempWorkRepo(db),
	}
}

// Page 分页参数，Limit<=0 表示不分页
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Offset(p.Offset).Limit(p.Limit)
	}
	return db
}

// ── 乐观锁 ──

// updateWithVersion 以 version 为条件更新指定列
// 影响行数为 0 说明记录已被并发修改（或已删除），返回 ErrOptimisticLock
func updateWithVersion(tx *gorm.DB, value model.Versioned, fields map[string]interface{}) error {
	oldVersion := value.GetVersion()
	now := time.Now().UTC()
	fields["version"] = oldVersion + 1
	fields["updated_at"] = now

	result := tx.Model(value).
		Where("version = ?", oldVersion).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	value.SetVersion(oldVersion + 1)
	value.Touch(now)
	return nil
}

// softDeleteWithVersion 以 version 为条件软删除，并记录删除人
func softDeleteWithVersion(tx *gorm.DB, value model.Versioned, deletedBy string) error {
	result := tx.Model(value).
		Where("version = ?", value.GetVersion()).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
			"version":    value.GetVersion() + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}
