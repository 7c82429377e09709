package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReceipts 导出收据 Excel，可按客户筛选
// GET /api/admin/exports/receipts?clientId=xxx
func (h *ExportHandler) ExportReceipts(c *gin.Context) {
	var req dto.ExportReceiptRequest
	if !bindQuery(c, &req) {
		return
	}

	buf, filename, err := h.exportSvc.ExportReceipts(c.Request.Context(), req.ClientID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
