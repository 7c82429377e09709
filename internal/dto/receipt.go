package dto

import (
	"time"

	"github.com/3Xbang/project/internal/model"
)

// ── 收据模块 DTO ──

// ReceiptListRequest 收据列表查询参数
type ReceiptListRequest struct {
	PaginationRequest
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
}

// CreateReceiptRequest 创建收据请求，收据编号由服务端生成
type CreateReceiptRequest struct {
	Client        string              `json:"client"        binding:"required,uuid"`
	Project       *string             `json:"project"       binding:"omitempty,uuid"`
	Amount        float64             `json:"amount"        binding:"gte=0"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
	PaymentDate   *time.Time          `json:"paymentDate"`
	Description   string              `json:"description"   binding:"required"`
	Items         []model.ReceiptItem `json:"items"`
	TaxRate       float64             `json:"taxRate"       binding:"gte=0,lte=100"`
	Notes         string              `json:"notes"`
}

// UpdateReceiptRequest 更新收据请求，nil 字段保持不变
// ReceiptNumber 只为兼容旧客户端而保留，服务端忽略该字段
type UpdateReceiptRequest struct {
	ReceiptNumber *string             `json:"receiptNumber"`
	Project       *string             `json:"project"       binding:"omitempty,uuid"`
	Amount        *float64            `json:"amount"        binding:"omitempty,gte=0"`
	PaymentMethod *string             `json:"paymentMethod"`
	PaymentDate   *time.Time          `json:"paymentDate"`
	Description   *string             `json:"description"   binding:"omitempty,min=1"`
	Items         []model.ReceiptItem `json:"items"`
	TaxRate       *float64            `json:"taxRate"       binding:"omitempty,gte=0,lte=100"`
	Notes         *string             `json:"notes"`
}

// ExportReceiptRequest 收据导出筛选
type ExportReceiptRequest struct {
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
}
