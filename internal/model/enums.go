package model

import "strings"

// ── 角色 ──

// Role 用户角色，角色之间没有继承关系
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid 是否为已定义的角色
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// ParseRole 解析角色字符串，忽略大小写与首尾空白；未定义的角色返回 false
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// IsStaff 员工类角色（需要 permissionLevel）
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// ── 项目 ──

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

// ── 报价 ──

type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteConfirmed QuoteStatus = "confirmed"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteExpired   QuoteStatus = "expired"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteConfirmed, QuoteRejected, QuoteExpired:
		return true
	}
	return false
}

// ── 维修 ──

type RepairStatus string

const (
	RepairPending    RepairStatus = "pending"
	RepairInProgress RepairStatus = "in_progress"
	RepairCompleted  RepairStatus = "completed"
	RepairCancelled  RepairStatus = "cancelled"
)

func (s RepairStatus) Valid() bool {
	switch s {
	case RepairPending, RepairInProgress, RepairCompleted, RepairCancelled:
		return true
	}
	return false
}

type RepairPriority string

const (
	PriorityLow    RepairPriority = "low"
	PriorityMedium RepairPriority = "medium"
	PriorityHigh   RepairPriority = "high"
	PriorityUrgent RepairPriority = "urgent"
)

func (p RepairPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ── 临时施工 ──

type TempWorkStatus string

const (
	TempWorkPendingReview TempWorkStatus = "待审核"
	TempWorkApproved      TempWorkStatus = "已批准"
	TempWorkRejected      TempWorkStatus = "已拒绝"
	TempWorkInProgress    TempWorkStatus = "进行中"
	TempWorkCompleted     TempWorkStatus = "已完成"
)

func (s TempWorkStatus) Valid() bool {
	switch s {
	case TempWorkPendingReview, TempWorkApproved, TempWorkRejected, TempWorkInProgress, TempWorkCompleted:
		return true
	}
	return false
}

type WorkType string

const (
	WorkPlumbingElectric WorkType = "水电维修"
	WorkWallRepair       WorkType = "墙面修补"
	WorkFloorRepair      WorkType = "地板维修"
	WorkRoofRepair       WorkType = "屋顶维修"
	WorkOther            WorkType = "其他"
)

func (w WorkType) Valid() bool {
	switch w {
	case WorkPlumbingElectric, WorkWallRepair, WorkFloorRepair, WorkRoofRepair, WorkOther:
		return true
	}
	return false
}

// ── 收据 ──

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "现金"
	PaymentTransfer PaymentMethod = "银行转账"
	PaymentAlipay   PaymentMethod = "支付宝"
	PaymentWechat   PaymentMethod = "微信支付"
	PaymentOther    PaymentMethod = "其他"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentAlipay, PaymentWechat, PaymentOther:
		return true
	}
	return false
}
