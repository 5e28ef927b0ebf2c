package ledger

import (
	"errors"
	"fmt"
)

// Kind 错误分类，供上层映射HTTP状态码
type Kind int

const (
	KindValidation    Kind = iota // 参数错误
	KindAuthorization             // 权限错误
	KindConflict                  // 状态冲突
	KindNotFound                  // 记录不存在
	KindTransfer                  // 转账失败
)

// Error 账本错误
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is 让包装后的转账错误仍能与哨兵值匹配
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.msg == t.msg
}

// Kind 返回错误分类
func (e *Error) Kind() Kind { return e.kind }

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	ErrProjectNotFound     = newError(KindNotFound, "项目不存在")
	ErrBackerNotFound      = newError(KindNotFound, "未找到出资记录")
	ErrInvalidGoal         = newError(KindValidation, "目标金额必须大于0")
	ErrInvalidDuration     = newError(KindValidation, "众筹时长必须在1到90天之间")
	ErrMilestoneMismatch   = newError(KindValidation, "里程碑描述和金额列表必须等长且不为空")
	ErrGoalMismatch        = newError(KindValidation, "里程碑金额之和必须等于目标金额")
	ErrInvalidAmount       = newError(KindValidation, "出资金额必须大于0")
	ErrAmountOverflow      = newError(KindValidation, "出资金额超出可记账范围")
	ErrMilestoneOutOfRange = newError(KindValidation, "里程碑序号超出范围")
	ErrFeeTooHigh          = newError(KindValidation, "平台费率不能超过10%")
	ErrNotCreator          = newError(KindAuthorization, "只有项目创建者可以执行此操作")
	ErrNotOwner            = newError(KindAuthorization, "只有平台管理员可以执行此操作")
	ErrProjectCancelled    = newError(KindConflict, "项目已取消")
	ErrDeadlinePassed      = newError(KindConflict, "项目已过截止时间")
	ErrNotFullyFunded      = newError(KindConflict, "项目尚未达到目标金额")
	ErrMilestoneCompleted  = newError(KindConflict, "里程碑已完成")
	ErrPreviousIncomplete  = newError(KindConflict, "上一个里程碑尚未完成")
	ErrHasCompletedPayout  = newError(KindConflict, "已有里程碑完成，项目无法取消")
	ErrAlreadyRefunded     = newError(KindConflict, "该地址已经退款")
	ErrRefundNotAllowed    = newError(KindConflict, "当前状态不允许退款")
	ErrTransferFailed      = newError(KindTransfer, "转账失败")
)

// transferError 包装银行层返回的错误
func transferError(cause error) *Error {
	return &Error{kind: KindTransfer, msg: "转账失败", cause: cause}
}

// KindOf 从错误中提取分类；非账本错误返回 false，由调用方自行处理
func KindOf(err error) (Kind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.kind, true
	}
	return 0, false
}
