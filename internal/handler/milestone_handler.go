package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/escrow/internal/ledger"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	ledger *ledger.Ledger
}

func NewMilestoneHandler(l *ledger.Ledger) *MilestoneHandler {
	return &MilestoneHandler{ledger: l}
}

// CompleteMilestone 完成里程碑并放款
func (h *MilestoneHandler) CompleteMilestone(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑序号")
		return
	}

	var req CompleteMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, "caller", req.Caller)
	if !ok {
		return
	}

	if err := h.ledger.CompleteMilestone(c.Request.Context(), caller, id, index); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑已完成，资金已放款", nil)
}
