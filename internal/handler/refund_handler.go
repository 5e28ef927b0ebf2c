package handler

import (
	"net/http"

	"github.com/blues/escrow/internal/ledger"
	"github.com/gin-gonic/gin"
)

type RefundHandler struct {
	ledger *ledger.Ledger
}

func NewRefundHandler(l *ledger.Ledger) *RefundHandler {
	return &RefundHandler{ledger: l}
}

// ClaimRefund 出资人认领退款
func (h *RefundHandler) ClaimRefund(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req ClaimRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	contributor, ok := parseAddress(c, "contributor", req.Contributor)
	if !ok {
		return
	}

	if err := h.ledger.ClaimRefund(c.Request.Context(), id, contributor); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}
