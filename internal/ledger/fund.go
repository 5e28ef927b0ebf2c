package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// FundProject 向项目出资。
//
// 同一地址的多次出资累加到同一条出资记录；首次出资时按顺序登记，
// 该顺序只用于枚举和计数，与放款顺序无关。累计出资达到目标金额时
// fullyFunded 置位，此后永不回退，即使超额出资也照单全收。
func (l *Ledger) FundProject(projectID uint64, contributor common.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return err
	}
	if p.cancelled {
		return ErrProjectCancelled
	}
	if !l.now().Before(p.deadline) {
		return ErrDeadlinePassed
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	// totalFunded 永不扣减且覆盖所有出资人，守住它即守住单个出资记录
	if p.totalFunded+amount < p.totalFunded {
		return ErrAmountOverflow
	}

	b, ok := p.backers[contributor]
	if !ok {
		b = &backer{}
		p.backers[contributor] = b
		p.backerOrder = append(p.backerOrder, contributor)
	}
	b.amount += amount
	p.totalFunded += amount
	if p.totalFunded >= p.fundingGoal {
		p.fullyFunded = true
	}

	l.sink.Emit(Event{
		Type:        EventProjectFunded,
		ProjectID:   p.id,
		Contributor: contributor,
		Amount:      amount,
		At:          l.now(),
	})
	return nil
}

// GetBackerAmount 查询某地址对项目的累计出资
func (l *Ledger) GetBackerAmount(projectID uint64, contributor common.Address) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return 0, err
	}
	b, ok := p.backers[contributor]
	if !ok {
		return 0, nil
	}
	return b.amount, nil
}

// GetBackerCount 查询项目的出资人数量
func (l *Ledger) GetBackerCount(projectID uint64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return 0, err
	}
	return len(p.backerOrder), nil
}

// GetBackers 按首次出资顺序枚举项目的出资人
func (l *Ledger) GetBackers(projectID uint64) ([]Backer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return nil, err
	}
	views := make([]Backer, len(p.backerOrder))
	for i, addr := range p.backerOrder {
		b := p.backers[addr]
		views[i] = Backer{Address: addr, Amount: b.amount, Refunded: b.refunded}
	}
	return views, nil
}
