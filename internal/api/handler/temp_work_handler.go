package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// TempWorkHandler 临时用工申请 HTTP 处理器
type TempWorkHandler struct {
	tempWorkSvc service.TempWorkService
}

// NewTempWorkHandler 创建 TempWorkHandler
func NewTempWorkHandler(tempWorkSvc service.TempWorkService) *TempWorkHandler {
	return &TempWorkHandler{tempWorkSvc: tempWorkSvc}
}

// ListTempWorks GET /api/client/temp-works
func (h *TempWorkHandler) ListTempWorks(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.TempWorkListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.tempWorkSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	writePage(c, "", page)
}

// GetTempWork GET /api/client/temp-works/:id
func (h *TempWorkHandler) GetTempWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	work, err := h.tempWorkSvc.Get(c.Request.Context(), id, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, work)
}

// CreateTempWork 客户提交用工申请，初始状态为待审核
// POST /api/client/temp-works
func (h *TempWorkHandler) CreateTempWork(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateTempWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.tempWorkSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, work)
}

// UpdateTempWork 审批或修改用工申请
// PUT /api/client/temp-works/:id
func (h *TempWorkHandler) UpdateTempWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateTempWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.tempWorkSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, work)
}

// DeleteTempWork DELETE /api/client/temp-works/:id
func (h *TempWorkHandler) DeleteTempWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.tempWorkSvc.Delete(c.Request.Context(), id, caller); err != nil {
		response.Fail(c, err)
		return
	}

	response.Deleted(c)
}
