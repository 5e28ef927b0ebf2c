// Package ledger 实现里程碑托管账本的核心状态机。
//
// 所有资金相关的规则都收敛在这一个包里：项目创建、出资、里程碑放款、
// 取消和退款。每个写操作在同一把互斥锁下完整执行，外部观察不到任何
// 中间状态；涉及转账的操作先校验、后转账、最后提交内存状态，转账失败
// 时账本保持与调用前完全一致。
package ledger

import (
	"sync"
	"time"

	"github.com/blues/escrow/internal/bank"
	"github.com/ethereum/go-ethereum/common"
)

// MaxFeeBps 平台费率上限（万分比），即10%
const MaxFeeBps = 1000

// Ledger 托管账本
type Ledger struct {
	mu sync.Mutex

	owner    common.Address
	treasury common.Address
	feeBps   uint64

	projects []*project

	bank bank.Bank
	sink EventSink
	now  func() time.Time
}

// New 创建账本。owner同时持有初始管理权；feeBps不得超过上限。
func New(owner, treasury common.Address, feeBps uint64, b bank.Bank, sink EventSink) (*Ledger, error) {
	if feeBps > MaxFeeBps {
		return nil, ErrFeeTooHigh
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Ledger{
		owner:    owner,
		treasury: treasury,
		feeBps:   feeBps,
		bank:     b,
		sink:     sink,
		now:      time.Now,
	}, nil
}

// SetTreasury 更换平台金库地址，仅限管理员
func (l *Ledger) SetTreasury(caller, treasury common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotOwner
	}
	l.treasury = treasury
	return nil
}

// SetPlatformFee 调整平台费率，仅限管理员；每次调整都重新检查上限
func (l *Ledger) SetPlatformFee(caller common.Address, feeBps uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotOwner
	}
	if feeBps > MaxFeeBps {
		return ErrFeeTooHigh
	}
	l.feeBps = feeBps
	return nil
}

// TransferOwnership 移交管理权，仅限当前管理员
func (l *Ledger) TransferOwnership(caller, newOwner common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotOwner
	}
	l.owner = newOwner
	return nil
}

// Owner 当前管理员地址
func (l *Ledger) Owner() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

// Treasury 当前金库地址
func (l *Ledger) Treasury() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.treasury
}

// PlatformFeeBps 当前平台费率（万分比）
func (l *Ledger) PlatformFeeBps() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.feeBps
}

// ProjectCount 历史创建的项目总数；项目ID从0起单调分配，永不复用
func (l *Ledger) ProjectCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.projects))
}

// lookup 按ID取项目，调用方必须已持有锁
func (l *Ledger) lookup(projectID uint64) (*project, error) {
	if projectID >= uint64(len(l.projects)) {
		return nil, ErrProjectNotFound
	}
	return l.projects[projectID], nil
}
