package dto

import (
	"time"

	"github.com/3Xbang/project/internal/model"
)

// ── 报价模块 DTO ──

// QuoteListRequest 报价列表查询参数
// ClientID 仅管理员可用，客户始终只能看到自己的报价
type QuoteListRequest struct {
	PaginationRequest
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
	Status   string `form:"status"   binding:"omitempty,oneof=pending confirmed rejected expired"`
}

// CreateQuoteRequest 创建报价请求
// 提供 items 时 amount 由明细合计得出，请求中的 amount 被忽略
type CreateQuoteRequest struct {
	ClientID    string            `json:"clientId"    binding:"required,uuid"`
	Title       string            `json:"title"       binding:"required,max=100"`
	Description string            `json:"description" binding:"max=1000"`
	Amount      float64           `json:"amount"      binding:"gte=0"`
	ValidUntil  time.Time         `json:"validUntil"  binding:"required"`
	ProjectID   *string           `json:"projectId"   binding:"omitempty,uuid"`
	Items       []model.QuoteItem `json:"items"`
	Notes       string            `json:"notes"       binding:"max=500"`
}

// UpdateQuoteRequest 更新报价请求，nil 字段保持不变
type UpdateQuoteRequest struct {
	Title       *string           `json:"title"       binding:"omitempty,min=1,max=100"`
	Description *string           `json:"description" binding:"omitempty,max=1000"`
	Amount      *float64          `json:"amount"      binding:"omitempty,gte=0"`
	ValidUntil  *time.Time        `json:"validUntil"`
	Status      *string           `json:"status"      binding:"omitempty,oneof=pending confirmed rejected expired"`
	ProjectID   *string           `json:"projectId"   binding:"omitempty,uuid"`
	Items       []model.QuoteItem `json:"items"`
	Notes       *string           `json:"notes"       binding:"omitempty,max=500"`
}
