package handler

import (
	"net/http"

	"github.com/blues/escrow/internal/bank"
	"github.com/blues/escrow/internal/ledger"
	"github.com/gin-gonic/gin"
)

type FundHandler struct {
	ledger  *ledger.Ledger
	deposit func(uint64) // 本地模式下资金入池的回调，链上模式为nil
}

func NewFundHandler(l *ledger.Ledger, b bank.Bank) *FundHandler {
	h := &FundHandler{ledger: l}
	// 进程内出金通道需要同步记录入池资金，链上模式资金直接进托管账户
	if mem, ok := b.(*bank.MemoryBank); ok {
		h.deposit = mem.Deposit
	}
	return h
}

// FundProject 向项目出资
func (h *FundHandler) FundProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req FundProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	contributor, ok := parseAddress(c, "contributor", req.Contributor)
	if !ok {
		return
	}

	if err := h.ledger.FundProject(id, contributor, req.Amount); err != nil {
		LedgerError(c, err)
		return
	}
	// 入池在账本提交之后、账本锁之外执行：托管池可能短暂落后于账本，
	// 并发放款此时会因余额不足被拒，重试即可成功；放款永远不会超付。
	if h.deposit != nil {
		h.deposit(req.Amount)
	}

	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// GetBackerAmount 查询某地址对项目的累计出资
func (h *FundHandler) GetBackerAmount(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	contributor, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}

	amount, err := h.ledger.GetBackerAmount(id, contributor)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"address": contributor.Hex(),
		"amount":  amount,
	})
}

// GetBackerCount 查询项目出资人数量
func (h *FundHandler) GetBackerCount(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	count, err := h.ledger.GetBackerCount(id)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"backer_count": count})
}

// GetBackers 枚举项目出资人
func (h *FundHandler) GetBackers(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	backers, err := h.ledger.GetBackers(id)
	if err != nil {
		LedgerError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"backers": backers})
}
