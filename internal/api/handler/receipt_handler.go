package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// ReceiptHandler 收据 HTTP 处理器
type ReceiptHandler struct {
	receiptSvc service.ReceiptService
}

// NewReceiptHandler 创建 ReceiptHandler
func NewReceiptHandler(receiptSvc service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptSvc: receiptSvc}
}

// ListReceipts GET /api/client/receipts
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ReceiptListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.receiptSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	writePage(c, "", page)
}

// GetReceipt GET /api/client/receipts/:id
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	receipt, err := h.receiptSvc.Get(c.Request.Context(), id, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, receipt)
}

// CreateReceipt 开具收据，编号与税额由服务端生成
// POST /api/client/receipts
func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, receipt)
}

// UpdateReceipt PUT /api/client/receipts/:id
func (h *ReceiptHandler) UpdateReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, receipt)
}

// DeleteReceipt DELETE /api/client/receipts/:id
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.receiptSvc.Delete(c.Request.Context(), id, caller); err != nil {
		response.Fail(c, err)
		return
	}

	response.Deleted(c)
}
