package dto

import (
	"time"

	"github.com/3Xbang/project/internal/model"
)

// ── 维修模块 DTO ──

// RepairListRequest 维修列表查询参数
type RepairListRequest struct {
	PaginationRequest
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
	Status   string `form:"status"   binding:"omitempty,oneof=pending in_progress completed cancelled"`
}

// CreateRepairRequest 客户提交维修申请
type CreateRepairRequest struct {
	Title       string              `json:"title"       binding:"required,max=100"`
	Description string              `json:"description" binding:"required,max=1000"`
	Location    string              `json:"location"    binding:"required,max=200"`
	Date        *time.Time          `json:"date"`
	Priority    string              `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	Images      []model.RepairImage `json:"images"`
}

// UpdateRepairRequest 员工处理维修申请，nil 字段保持不变
type UpdateRepairRequest struct {
	Title         *string             `json:"title"         binding:"omitempty,min=1,max=100"`
	Description   *string             `json:"description"   binding:"omitempty,min=1,max=1000"`
	Location      *string             `json:"location"      binding:"omitempty,min=1,max=200"`
	Priority      *string             `json:"priority"      binding:"omitempty,oneof=low medium high urgent"`
	Status        *string             `json:"status"        binding:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo    *string             `json:"assignedTo"    binding:"omitempty,uuid"`
	ScheduledDate *time.Time          `json:"scheduledDate"`
	Images        []model.RepairImage `json:"images"`
	Notes         *string             `json:"notes"         binding:"omitempty,max=500"`
}

// RepairFeedbackRequest 完工评价
type RepairFeedbackRequest struct {
	Rating  int    `json:"rating"  binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}

// RepairStatsResponse 维修申请状态统计
type RepairStatsResponse struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}
