package ledger

import (
	"context"
	"math/bits"

	"github.com/blues/escrow/internal/bank"
	"github.com/ethereum/go-ethereum/common"
)

// CompleteMilestone 完成里程碑并放款，仅限项目创建者。
//
// 里程碑严格按序完成：第i个只有在第i-1个已完成时才能完成，不可跳过、
// 不可重复。放款金额按当前费率拆分：fee = floor(fundAmount*feeBps/10000)
// 归金库，其余归创建者。创建者和金库两笔付款作为同一批提交给出金通道，
// 任何一笔失败则整个操作失败，账本状态不变。
func (l *Ledger) CompleteMilestone(ctx context.Context, caller common.Address, projectID uint64, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return err
	}
	if caller != p.creator {
		return ErrNotCreator
	}
	if !p.fullyFunded {
		return ErrNotFullyFunded
	}
	if p.cancelled {
		return ErrProjectCancelled
	}
	if index < 0 || index >= len(p.milestones) {
		return ErrMilestoneOutOfRange
	}
	m := &p.milestones[index]
	if m.completed {
		return ErrMilestoneCompleted
	}
	if index > 0 && !p.milestones[index-1].completed {
		return ErrPreviousIncomplete
	}

	fee := feeOf(m.fundAmount, l.feeBps)
	creatorAmount := m.fundAmount - fee

	payments := []bank.Payment{{
		ProjectID: p.id,
		To:        p.creator,
		Amount:    creatorAmount,
		Kind:      bank.PaymentMilestone,
	}}
	if fee > 0 {
		payments = append(payments, bank.Payment{
			ProjectID: p.id,
			To:        l.treasury,
			Amount:    fee,
			Kind:      bank.PaymentFee,
		})
	}

	// 先付款后提交：整批付款失败时不留下任何状态变化
	if err := l.bank.Release(ctx, payments); err != nil {
		return transferError(err)
	}

	m.completed = true
	p.milestonesCompleted++

	now := l.now()
	l.sink.Emit(Event{
		Type:           EventMilestoneCompleted,
		ProjectID:      p.id,
		Creator:        p.creator,
		MilestoneIndex: index,
		At:             now,
	})
	l.sink.Emit(Event{
		Type:           EventFundsReleased,
		ProjectID:      p.id,
		Recipient:      p.creator,
		Amount:         creatorAmount,
		Fee:            fee,
		MilestoneIndex: index,
		At:             now,
	})
	return nil
}

// feeOf 计算放款金额的平台费。中间积用128位表示，wei级大额放款
// 不会溢出；feeBps不超过万分之一万，商必然落在64位内。
func feeOf(amount, feeBps uint64) uint64 {
	hi, lo := bits.Mul64(amount, feeBps)
	fee, _ := bits.Div64(hi, lo, 10000)
	return fee
}
