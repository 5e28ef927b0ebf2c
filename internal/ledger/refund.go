package ledger

import (
	"context"

	"github.com/blues/escrow/internal/bank"
	"github.com/ethereum/go-ethereum/common"
)

// ClaimRefund 出资人认领退款。
//
// 退款仅在两种情况下允许：项目已取消，或截止时间已到且未达目标。
// 已达目标但创建者迟迟不完成里程碑的项目没有退款路径，这是既定
// 产品规则。退款一次性退还该地址的全部累计出资；转账失败时
// refunded 标记不会置位，出资人可以再次认领。
//
// 注意：退款不会从项目的 totalFunded 中扣减。
func (l *Ledger) ClaimRefund(ctx context.Context, projectID uint64, contributor common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return err
	}
	b, ok := p.backers[contributor]
	if !ok || b.amount == 0 {
		return ErrBackerNotFound
	}
	if b.refunded {
		return ErrAlreadyRefunded
	}
	expired := !l.now().Before(p.deadline)
	if !p.cancelled && !(expired && !p.fullyFunded) {
		return ErrRefundNotAllowed
	}

	if err := l.bank.Release(ctx, []bank.Payment{{
		ProjectID: p.id,
		To:        contributor,
		Amount:    b.amount,
		Kind:      bank.PaymentRefund,
	}}); err != nil {
		return transferError(err)
	}

	b.refunded = true

	l.sink.Emit(Event{
		Type:        EventRefundClaimed,
		ProjectID:   p.id,
		Contributor: contributor,
		Amount:      b.amount,
		At:          l.now(),
	})
	return nil
}
