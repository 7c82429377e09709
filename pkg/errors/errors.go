package errors

import (
	"errors"
	"net/http"
)

// 错误码
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateKey       = "DUPLICATE_KEY"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeServer             = "SERVER_ERROR"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"

	// ── 状态冲突 ──
	CodeQuoteExpired          = "QUOTE_EXPIRED"
	CodeQuoteAlreadyConfirmed = "QUOTE_ALREADY_CONFIRMED"
	CodeQuoteConfirmed        = "QUOTE_CONFIRMED"
	CodeQuoteRejected         = "QUOTE_REJECTED"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeConcurrentUpdate      = "CONCURRENT_MODIFICATION"
)

// AppError 携带 HTTP 状态码与业务错误码的领域错误
// 由 response.Fail 统一序列化为错误信封
type AppError struct {
	Status  int
	Code    string
	Message string
	// Field 校验失败的字段名（仅 VALIDATION_ERROR）
	Field string
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return e.Code + ": " + e.Field + ": " + e.Message
	}
	return e.Code + ": " + e.Message
}

// ── 构造函数 ──

// Validation 字段校验失败 400
func Validation(field, message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Field: field}
}

// Duplicate 唯一约束冲突 400
func Duplicate(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: CodeDuplicateKey, Message: message}
}

// Unauthorized 未认证 401
func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden 无权限 403
func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// NotFound 资源不存在 404
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// StateConflict 非法状态变更 400
func StateConflict(code, message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// TooManyRequests 触发限流 429
func TooManyRequests(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Code: CodeTooManyRequests, Message: message}
}

// PayloadTooLarge 请求体过大 413
func PayloadTooLarge(message string) *AppError {
	return &AppError{Status: http.StatusRequestEntityTooLarge, Code: CodePayloadTooLarge, Message: message}
}

// Server 未预期错误 500
func Server() *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeServer, Message: "服务器内部错误"}
}

// ── 预定义错误 ──

var (
	// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
	ErrOptimisticLock = StateConflict(CodeConcurrentUpdate, "数据已被其他操作修改，请刷新后重试")

	ErrInvalidCredentials = &AppError{
		Status:  http.StatusUnauthorized,
		Code:    CodeInvalidCredentials,
		Message: "邮箱或密码错误",
	}
	ErrNotAuthenticated = Unauthorized("未授权访问，请先登录")
	ErrNoPermission     = Forbidden("无权执行此操作")

	ErrQuoteExpired          = StateConflict(CodeQuoteExpired, "报价已过期")
	ErrQuoteAlreadyConfirmed = StateConflict(CodeQuoteAlreadyConfirmed, "报价已确认")
	ErrQuoteConfirmed        = StateConflict(CodeQuoteConfirmed, "报价已确认，不能修改或删除")
	ErrQuoteRejected         = StateConflict(CodeQuoteRejected, "报价已被拒绝，不能确认")
)

// As 提取错误链中的 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
