package dto

import "time"

// ── 临时施工模块 DTO ──

// TempWorkListRequest 临时施工列表查询参数
type TempWorkListRequest struct {
	PaginationRequest
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
	Status   string `form:"status"`
}

// CreateTempWorkRequest 客户提交临时施工申请
type CreateTempWorkRequest struct {
	WorkType    string    `json:"workType"    binding:"required"`
	Location    string    `json:"location"    binding:"required,max=200"`
	StartDate   time.Time `json:"startDate"   binding:"required"`
	EndDate     time.Time `json:"endDate"     binding:"required"`
	Description string    `json:"description" binding:"required"`
	Workers     []string  `json:"workers"`
}

// UpdateTempWorkRequest 员工审批或更新临时施工，nil 字段保持不变
type UpdateTempWorkRequest struct {
	WorkType         *string    `json:"workType"`
	Location         *string    `json:"location"         binding:"omitempty,min=1,max=200"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	Description      *string    `json:"description"      binding:"omitempty,min=1"`
	Status           *string    `json:"status"`
	ApprovalComments *string    `json:"approvalComments"`
	Workers          []string   `json:"workers"`
}
