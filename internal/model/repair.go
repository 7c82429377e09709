package model

import (
	"time"

	"gorm.io/datatypes"
)

// RepairImage 维修图片（地址为不透明字符串）
type RepairImage struct {
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// RepairFeedback 完工后的客户评价
type RepairFeedback struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	Date    time.Time `json:"date"`
}

// Repair 维修申请表，对应 repairs
type Repair struct {
	RepairID      string                                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID      string                                `gorm:"type:uuid;not null;index"                       json:"clientId"`
	Title         string                                `gorm:"type:varchar(100);not null"                     json:"title"`
	Description   string                                `gorm:"type:varchar(1000);not null"                    json:"description"`
	Date          time.Time                             `gorm:"not null"                                       json:"date"`
	Location      string                                `gorm:"type:varchar(200);not null"                     json:"location"`
	Priority      RepairPriority                        `gorm:"type:varchar(10);not null;default:'medium'"     json:"priority"`
	Status        RepairStatus                          `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	AssignedTo    *string                               `gorm:"type:uuid"                                      json:"assignedTo,omitempty"`
	ScheduledDate *time.Time                            `                                                      json:"scheduledDate,omitempty"`
	CompletedDate *time.Time                            `                                                      json:"completedDate,omitempty"`
	Images        datatypes.JSONSlice[RepairImage]      `gorm:"type:jsonb;not null;default:'[]'"               json:"images"`
	Feedback      datatypes.JSONType[*RepairFeedback]   `gorm:"type:jsonb;not null;default:'null'"             json:"feedback"`
	Notes         string                                `gorm:"type:varchar(500);not null;default:''"          json:"notes,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Repair) TableName() string { return "repairs" }
