package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/escrow/internal/ledger"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	ledger *ledger.Ledger
}

func NewProjectHandler(l *ledger.Ledger) *ProjectHandler {
	return &ProjectHandler{ledger: l}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	creator, ok := parseAddress(c, "creator", req.Creator)
	if !ok {
		return
	}

	projectID, err := h.ledger.CreateProject(creator, req.Name, req.Description,
		req.FundingGoal, req.DurationDays, req.MilestoneDescriptions, req.MilestoneAmounts)
	if err != nil {
		LedgerError(c, err)
		return
	}

	project, err := h.ledger.GetProject(projectID)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", gin.H{
		"project_id": projectID,
		"project":    project,
	})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects := h.ledger.GetProjects()
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.ledger.GetProject(id)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": project})
}

// GetMilestones 获取项目里程碑序列
func (h *ProjectHandler) GetMilestones(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	milestones, err := h.ledger.GetMilestones(id)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"milestones": milestones})
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req CancelProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, "caller", req.Caller)
	if !ok {
		return
	}

	if err := h.ledger.CancelProject(caller, id); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目已取消", nil)
}

// parseProjectID 解析路径里的项目ID
func parseProjectID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return id, true
}
