package handler

import (
	"net/http"

	"github.com/blues/escrow/internal/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerError 按账本错误分类映射HTTP状态码
func LedgerError(c *gin.Context, err error) {
	kind, ok := ledger.KindOf(err)
	if !ok {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	var status int
	switch kind {
	case ledger.KindValidation:
		status = http.StatusBadRequest
	case ledger.KindAuthorization:
		status = http.StatusForbidden
	case ledger.KindNotFound:
		status = http.StatusNotFound
	case ledger.KindConflict:
		status = http.StatusConflict
	case ledger.KindTransfer:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	ErrorResponse(c, status, err.Error())
}

// parseAddress 解析十六进制地址
func parseAddress(c *gin.Context, field, value string) (common.Address, bool) {
	if !common.IsHexAddress(value) {
		ErrorResponse(c, http.StatusBadRequest, "无效的地址: "+field)
		return common.Address{}, false
	}
	return common.HexToAddress(value), true
}
