package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// RepairHandler 维修申请 HTTP 处理器
type RepairHandler struct {
	repairSvc service.RepairService
}

// NewRepairHandler 创建 RepairHandler
func NewRepairHandler(repairSvc service.RepairService) *RepairHandler {
	return &RepairHandler{repairSvc: repairSvc}
}

// ListRepairs GET /api/client/repairs
func (h *RepairHandler) ListRepairs(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.RepairListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.repairSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	writePage(c, "repairs", page)
}

// GetRepair GET /api/client/repairs/:id
func (h *RepairHandler) GetRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	repair, err := h.repairSvc.Get(c.Request.Context(), id, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"repair": repair})
}

// CreateRepair 客户提交维修申请
// POST /api/client/repairs
func (h *RepairHandler) CreateRepair(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateRepairRequest
	if !bindJSON(c, &req) {
		return
	}

	repair, err := h.repairSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"repair": repair})
}

// UpdateRepair 员工处理维修：指派、排期、状态流转
// PUT /api/client/repairs/:id
func (h *RepairHandler) UpdateRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateRepairRequest
	if !bindJSON(c, &req) {
		return
	}

	repair, err := h.repairSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"repair": repair})
}

// DeleteRepair DELETE /api/client/repairs/:id
func (h *RepairHandler) DeleteRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.repairSvc.Delete(c.Request.Context(), id, caller); err != nil {
		response.Fail(c, err)
		return
	}

	response.Deleted(c)
}

// Stats 当前客户的维修统计
// GET /api/client/repairs/stats
func (h *RepairHandler) Stats(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	stats, err := h.repairSvc.Stats(c.Request.Context(), caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, stats)
}

// Feedback 客户评价
// POST /api/client/repairs/:id/feedback
func (h *RepairHandler) Feedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.RepairFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	repair, err := h.repairSvc.Feedback(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"repair": repair})
}
