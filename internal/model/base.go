package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用时间戳（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"           json:"updatedAt"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"     json:"-"`
	DeletedBy *string        `gorm:"type:uuid" json:"-"`
}

// VersionedModel 支持乐观锁的软删除模型
type VersionedModel struct {
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// GetVersion 当前版本号
func (m *VersionedModel) GetVersion() int { return m.Version }

// SetVersion 设置版本号
func (m *VersionedModel) SetVersion(v int) { m.Version = v }

// Versioned 以 version 列做乐观锁的模型
type Versioned interface {
	GetVersion() int
	SetVersion(v int)
	Touch(t time.Time)
}

// Touch 刷新更新时间
func (m *VersionedModel) Touch(t time.Time) { m.UpdatedAt = t }
