package dto

import (
	"time"

	"github.com/3Xbang/project/internal/model"
)

// ── 项目模块 DTO ──

// ProjectListRequest 项目列表查询参数
type ProjectListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=planned in-progress completed on-hold cancelled"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string                  `json:"title"       binding:"required,max=100"`
	Description string                  `json:"description" binding:"required,max=2000"`
	Location    string                  `json:"location"    binding:"required,max=200"`
	Client      string                  `json:"client"      binding:"required,uuid"`
	StartDate   time.Time               `json:"startDate"   binding:"required"`
	EndDate     time.Time               `json:"endDate"     binding:"required"`
	Status      string                  `json:"status"      binding:"omitempty,oneof=planned in-progress completed on-hold cancelled"`
	Progress    int                     `json:"progress"    binding:"min=0,max=100"`
	Budget      float64                 `json:"budget"      binding:"gte=0"`
	ActualCost  float64                 `json:"actualCost"  binding:"gte=0"`
	ImageURL    string                  `json:"imageUrl"    binding:"max=500"`
	Features    []string                `json:"features"`
	Tasks       []string                `json:"tasks"`
	Team        []string                `json:"team"`
	Gallery     []model.GalleryItem     `json:"gallery"`
	Documents   []model.ProjectDocument `json:"documents"`
}

// UpdateProjectRequest 更新项目请求，nil 字段保持不变
type UpdateProjectRequest struct {
	Title         *string                 `json:"title"         binding:"omitempty,min=1,max=100"`
	Description   *string                 `json:"description"   binding:"omitempty,min=1,max=2000"`
	Location      *string                 `json:"location"      binding:"omitempty,min=1,max=200"`
	Client        *string                 `json:"client"        binding:"omitempty,uuid"`
	StartDate     *time.Time              `json:"startDate"`
	EndDate       *time.Time              `json:"endDate"`
	ActualEndDate *time.Time              `json:"actualEndDate"`
	Status        *string                 `json:"status"        binding:"omitempty,oneof=planned in-progress completed on-hold cancelled"`
	Progress      *int                    `json:"progress"      binding:"omitempty,min=0,max=100"`
	Budget        *float64                `json:"budget"        binding:"omitempty,gte=0"`
	ActualCost    *float64                `json:"actualCost"    binding:"omitempty,gte=0"`
	ImageURL      *string                 `json:"imageUrl"      binding:"omitempty,max=500"`
	Features      []string                `json:"features"`
	Tasks         []string                `json:"tasks"`
	Team          []string                `json:"team"`
	Gallery       []model.GalleryItem     `json:"gallery"`
	Documents     []model.ProjectDocument `json:"documents"`
}

// ProjectSummary 匿名访问时返回的项目摘要
type ProjectSummary struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	Status      model.ProjectStatus `json:"status"`
	Progress    int                 `json:"progress"`
	ImageURL    string              `json:"imageUrl"`
}

// NewProjectSummary 项目摘要投影
func NewProjectSummary(p *model.Project) ProjectSummary {
	return ProjectSummary{
		ID:          p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Progress:    p.Progress,
		ImageURL:    p.ImageURL,
	}
}
