package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/3Xbang/project/internal/dto"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/response"
)

// ProjectHandler 工程项目 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects 项目列表，匿名访问只返回摘要
// GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.projectSvc.List(c.Request.Context(), &req, callerOf(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	writePage(c, "projects", page)
}

// GetProject 项目详情
// GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Get(c.Request.Context(), id, callerOf(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"project": project})
}

// CreateProject 创建项目（管理员）
// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, gin.H{"project": project})
}

// UpdateProject 更新项目（管理员）
// PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{"project": project})
}

// DeleteProject 删除项目（管理员）
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), id, caller); err != nil {
		response.Fail(c, err)
		return
	}

	response.Deleted(c)
}
