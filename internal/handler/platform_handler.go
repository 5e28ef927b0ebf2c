package handler

import (
	"net/http"

	"github.com/blues/escrow/internal/ledger"
	"github.com/gin-gonic/gin"
)

type PlatformHandler struct {
	ledger *ledger.Ledger
}

func NewPlatformHandler(l *ledger.Ledger) *PlatformHandler {
	return &PlatformHandler{ledger: l}
}

// GetPlatform 查询平台管理状态
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"owner":         h.ledger.Owner().Hex(),
		"treasury":      h.ledger.Treasury().Hex(),
		"fee_bps":       h.ledger.PlatformFeeBps(),
		"project_count": h.ledger.ProjectCount(),
	})
}

// SetTreasury 更换金库地址
func (h *PlatformHandler) SetTreasury(c *gin.Context) {
	var req SetTreasuryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, "caller", req.Caller)
	if !ok {
		return
	}
	treasury, ok := parseAddress(c, "treasury", req.Treasury)
	if !ok {
		return
	}

	if err := h.ledger.SetTreasury(caller, treasury); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "金库地址已更新", nil)
}

// SetPlatformFee 调整平台费率
func (h *PlatformHandler) SetPlatformFee(c *gin.Context) {
	var req SetPlatformFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, "caller", req.Caller)
	if !ok {
		return
	}

	if err := h.ledger.SetPlatformFee(caller, req.FeeBps); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "平台费率已更新", nil)
}

// TransferOwnership 移交管理权
func (h *PlatformHandler) TransferOwnership(c *gin.Context) {
	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, "caller", req.Caller)
	if !ok {
		return
	}
	newOwner, ok := parseAddress(c, "new_owner", req.NewOwner)
	if !ok {
		return
	}

	if err := h.ledger.TransferOwnership(caller, newOwner); err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "管理权已移交", nil)
}
