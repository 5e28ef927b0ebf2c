package bank

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// PaymentKind 付款类型
type PaymentKind string

const (
	PaymentMilestone PaymentKind = "milestone" // 里程碑放款（创建者）
	PaymentFee       PaymentKind = "fee"       // 平台费（金库）
	PaymentRefund    PaymentKind = "refund"    // 退款（出资人）
)

// Payment 单笔付款
type Payment struct {
	ProjectID uint64
	To        common.Address
	Amount    uint64
	Kind      PaymentKind
}

// Bank 托管资金的出金通道。
//
// Release 对整批付款是原子的：要么全部到账，要么一笔都不付。
// 账本依赖这一点保证"创建者到账而金库未到账"这类半完成状态不会出现。
type Bank interface {
	Release(ctx context.Context, payments []Payment) error
}
