package model

import (
	"time"

	"gorm.io/datatypes"
)

// GalleryItem 项目图库条目
type GalleryItem struct {
	URL        string    `json:"url"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ProjectDocument 项目文档（文件地址为不透明字符串）
type ProjectDocument struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"fileUrl"`
	FileType    string    `json:"fileType,omitempty"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Project 项目表，对应 projects
type Project struct {
	ProjectID     string                               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title         string                               `gorm:"type:varchar(100);not null"                     json:"title"`
	Description   string                               `gorm:"type:varchar(2000);not null"                    json:"description"`
	Location      string                               `gorm:"type:varchar(200);not null"                     json:"location"`
	ClientID      string                               `gorm:"type:uuid;not null;index"                       json:"client"`
	StartDate     time.Time                            `gorm:"not null"                                       json:"startDate"`
	EndDate       time.Time                            `gorm:"not null"                                       json:"endDate"`
	ActualEndDate *time.Time                           `                                                      json:"actualEndDate,omitempty"`
	Status        ProjectStatus                        `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	Progress      int                                  `gorm:"not null;default:0"                             json:"progress"`
	Budget        float64                              `gorm:"type:numeric(14,2);not null"                    json:"budget"`
	ActualCost    float64                              `gorm:"type:numeric(14,2);not null;default:0"          json:"actualCost"`
	ImageURL      string                               `gorm:"type:varchar(500);not null"                     json:"imageUrl"`
	Features      datatypes.JSONSlice[string]          `gorm:"type:jsonb;not null;default:'[]'"               json:"features"`
	Tasks         datatypes.JSONSlice[string]          `gorm:"type:jsonb;not null;default:'[]'"               json:"tasks"`
	Team          datatypes.JSONSlice[string]          `gorm:"type:jsonb;not null;default:'[]'"               json:"team"`
	Gallery       datatypes.JSONSlice[GalleryItem]     `gorm:"type:jsonb;not null;default:'[]'"               json:"gallery"`
	Documents     datatypes.JSONSlice[ProjectDocument] `gorm:"type:jsonb;not null;default:'[]'"               json:"documents"`
	VersionedModel
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// DefaultProjectImage 未提供封面时的默认图片
const DefaultProjectImage = "/default-project.jpg"
