package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Project  *ProjectHandler
	Quote    *QuoteHandler
	Repair   *RepairHandler
	Receipt  *ReceiptHandler
	TempWork *TempWorkHandler
	Export   *ExportHandler
	Calendar *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Project:  NewProjectHandler(svc.Project),
		Quote:    NewQuoteHandler(svc.Quote),
		Repair:   NewRepairHandler(svc.Repair),
		Receipt:  NewReceiptHandler(svc.Receipt),
		TempWork: NewTempWorkHandler(svc.TempWork),
		Export:   NewExportHandler(svc.Export),
		Calendar: NewCalendarHandler(svc.Calendar),
	}
}

// writePage 输出分页列表；key 非空时列表包裹在 {key: [...]} 中
func writePage[T any](c *gin.Context, key string, page *dto.PageResult[T]) {
	var data interface{} = page.Items
	if key != "" {
		data = gin.H{key: page.Items}
	}
	response.OKPage(c, data, len(page.Items), page.Total, page.Page, page.Limit)
}
