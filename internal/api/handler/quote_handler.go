package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// QuoteHandler 报价 HTTP 处理器
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler 创建 QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// ListQuotes 报价列表，客户只能看到自己的报价
// GET /api/client/quotes
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.QuoteListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.quoteSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	writePage(c, "quotes", page)
}

// GetQuote 报价详情
// GET /api/client/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	quote, err := h.quoteSvc.Get(c.Request.Context(), id, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"quote": quote})
}

// CreateQuote 创建报价
// POST /api/client/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"quote": quote})
}

// UpdateQuote 更新报价，已确认的报价不可修改
// PUT /api/client/quotes/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"quote": quote})
}

// ConfirmQuote 客户确认报价
// PUT /api/client/quotes/:id/confirm
func (h *QuoteHandler) ConfirmQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	quote, err := h.quoteSvc.Confirm(c.Request.Context(), id, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"quote": quote})
}

// DeleteQuote 删除报价
// DELETE /api/client/quotes/:id
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.quoteSvc.Delete(c.Request.Context(), id, caller); err != nil {
		response.Fail(c, err)
		return
	}

	response.Deleted(c)
}
