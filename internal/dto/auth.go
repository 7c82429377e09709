package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 公开注册请求，只能创建客户账号
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName"  binding:"required,max=50"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required,min=6"`
	Company   string `json:"company"   binding:"max=200"`
	Phone     string `json:"phone"     binding:"max=20"`
}

// AuthResponse 登录/注册成功响应
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// SessionResponse 会话状态
type SessionResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            UserResponse `json:"user"`
}
