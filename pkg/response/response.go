package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/3Xbang/project/pkg/errors"
)

// Response 统一响应信封
type Response struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody 错误信封主体
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination 根据总数与分页参数计算页数
func NewPagination(total int64, page, limit int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(total) / limit
		if int(total)%limit > 0 {
			pages++
		}
	}
	return &Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// OKList 200 列表响应，附带 count
func OKList(c *gin.Context, list interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Count: &count, Data: list})
}

// OKPage 200 分页列表响应
func OKPage(c *gin.Context, list interface{}, count int, total int64, page, limit int) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &count,
		Pagination: NewPagination(total, page, limit),
		Data:       list,
	})
}

// Deleted 200 删除成功，data 为空对象
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{}})
}

// ── 错误响应 ──

// Fail 唯一的错误出口：AppError 按自身状态码与错误码输出，
// 其他错误降级为 SERVER_ERROR，细节只进入日志
func Fail(c *gin.Context, err error) {
	appErr, ok := pkgerrors.As(err)
	if !ok {
		_ = c.Error(err)
		appErr = pkgerrors.Server()
	}
	AbortWith(c, appErr)
}

// AbortWith 输出错误信封并中止后续处理
func AbortWith(c *gin.Context, appErr *pkgerrors.AppError) {
	c.AbortWithStatusJSON(appErr.Status, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Field:   appErr.Field,
		},
	})
}
