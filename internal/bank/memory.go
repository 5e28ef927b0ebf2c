package bank

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MemoryBank 进程内出金通道，用于本地模式和测试。
//
// 托管池余额通过 Deposit 累加；Release 先整体校验再逐笔记账，
// 保证整批付款的原子性。
type MemoryBank struct {
	mu      sync.Mutex
	escrow  uint64
	credits map[common.Address]uint64

	// 测试钩子：命中该地址的付款会失败
	failAddr   common.Address
	failArmed  bool
	failReason error
}

// NewMemoryBank 创建进程内出金通道
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{credits: make(map[common.Address]uint64)}
}

// Deposit 资金入池
func (b *MemoryBank) Deposit(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.escrow += amount
}

// Release 原子地执行整批付款
func (b *MemoryBank) Release(_ context.Context, payments []Payment) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// 先整体校验，任何一笔不能付则整批不付
	var total uint64
	for _, p := range payments {
		if b.failArmed && p.To == b.failAddr {
			return b.failReason
		}
		total += p.Amount
	}
	if total > b.escrow {
		return errors.New("托管池余额不足")
	}

	for _, p := range payments {
		b.credits[p.To] += p.Amount
	}
	b.escrow -= total
	return nil
}

// CreditOf 查询某地址累计到账金额
func (b *MemoryBank) CreditOf(addr common.Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credits[addr]
}

// EscrowBalance 查询托管池余额
func (b *MemoryBank) EscrowBalance() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.escrow
}

// FailOn 设置测试钩子：发往指定地址的付款将失败
func (b *MemoryBank) FailOn(addr common.Address, reason error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAddr = addr
	b.failArmed = true
	b.failReason = reason
}

// ClearFail 清除测试钩子
func (b *MemoryBank) ClearFail() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failArmed = false
	b.failReason = nil
}
