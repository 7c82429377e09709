package dto

import "time"

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	FirstName       string `json:"firstName"       binding:"required,max=50"`
	LastName        string `json:"lastName"        binding:"required,max=50"`
	Email           string `json:"email"           binding:"required,email"`
	Password        string `json:"password"        binding:"required,min=6"`
	Role            string `json:"role"            binding:"omitempty,oneof=admin manager employee client"`
	PermissionLevel string `json:"permissionLevel" binding:"max=50"`
	Company         string `json:"company"         binding:"max=200"`
	Phone           string `json:"phone"           binding:"max=20"`
}

// UpdateUserRequest 更新用户信息请求，nil 字段保持不变
type UpdateUserRequest struct {
	FirstName       *string `json:"firstName"       binding:"omitempty,min=1,max=50"`
	LastName        *string `json:"lastName"        binding:"omitempty,min=1,max=50"`
	Email           *string `json:"email"           binding:"omitempty,email"`
	Password        *string `json:"password"        binding:"omitempty,min=6"`
	Role            *string `json:"role"            binding:"omitempty,oneof=admin manager employee client"`
	PermissionLevel *string `json:"permissionLevel" binding:"omitempty,max=50"`
	Company         *string `json:"company"         binding:"omitempty,max=200"`
	Phone           *string `json:"phone"           binding:"omitempty,max=20"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
}

// ── 用户模块响应 ──

// UserResponse 用户公开信息（不含密码）
type UserResponse struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	PermissionLevel string    `json:"permissionLevel,omitempty"`
	Company         string    `json:"company,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
