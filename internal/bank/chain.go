package bank

import (
	"context"
	"fmt"
	"math/big"

	"github.com/blues/escrow/internal/ethereum"
	"github.com/blues/escrow/internal/logger"
	"github.com/blues/escrow/internal/model"
	"gorm.io/gorm"
)

// ChainBank 链上出金通道：付款通过托管账户的原生币转账执行，
// 每笔付款落一条出金记录用于对账。
//
// 批次原子性：广播前先校验托管账户余额足够覆盖整批付款，任何一笔
// 在首次广播之前失败都不会留下链上痕迹。一旦有交易已广播，后续
// 失败无法撤回已出的款，此时批次记为 inconsistent 交人工对账——
// 链上没有合约聚合时这是无法消除的窗口，需要强一致的部署应使用
// 进程内出金通道并由上层结算。
type ChainBank struct {
	eth *ethereum.Client
	db  *gorm.DB
}

// NewChainBank 创建链上出金通道
func NewChainBank(eth *ethereum.Client, db *gorm.DB) *ChainBank {
	return &ChainBank{eth: eth, db: db}
}

// Release 执行整批付款
func (b *ChainBank) Release(ctx context.Context, payments []Payment) error {
	// 广播前整体校验余额
	var total uint64
	for _, p := range payments {
		total += p.Amount
	}
	balance, err := b.eth.Balance(ctx)
	if err != nil {
		return fmt.Errorf("查询托管账户余额失败: %w", err)
	}
	if balance.Cmp(new(big.Int).SetUint64(total)) < 0 {
		return fmt.Errorf("托管账户余额不足: 需要 %d, 当前 %s", total, balance.String())
	}

	sent := 0
	for _, p := range payments {
		record := model.TransferRecord{
			ProjectID: p.ProjectID,
			Recipient: p.To.Hex(),
			Amount:    p.Amount,
			Kind:      string(p.Kind),
		}

		txHash, err := b.eth.SendValue(ctx, p.To, new(big.Int).SetUint64(p.Amount))
		if err != nil {
			record.Status = model.TransferStatusFailed
			b.saveRecord(&record)
			if sent > 0 {
				// 批次部分成功，标记需要人工对账
				b.markInconsistent(payments[:sent])
				return fmt.Errorf("批次付款部分成功后失败(%d/%d), 需要对账: %w", sent, len(payments), err)
			}
			return fmt.Errorf("付款失败: %w", err)
		}

		record.TxHash = txHash.Hex()
		record.Status = model.TransferStatusPending
		b.saveRecord(&record)

		if err := b.eth.WaitConfirmed(ctx, txHash); err != nil {
			b.db.Model(&record).Update("status", model.TransferStatusFailed)
			if sent > 0 {
				b.markInconsistent(payments[:sent])
				return fmt.Errorf("批次付款部分成功后失败(%d/%d), 需要对账: %w", sent, len(payments), err)
			}
			return fmt.Errorf("付款确认失败: %w", err)
		}

		b.db.Model(&record).Update("status", model.TransferStatusConfirmed)
		sent++
	}

	return nil
}

// saveRecord 写出金记录；记录落库失败不阻断付款流程
func (b *ChainBank) saveRecord(record *model.TransferRecord) {
	if err := b.db.Create(record).Error; err != nil {
		logger.Error("写入出金记录失败: project=%d recipient=%s err=%v",
			record.ProjectID, record.Recipient, err)
	}
}

// markInconsistent 将批次中已成功的付款标记为待对账
func (b *ChainBank) markInconsistent(done []Payment) {
	for _, p := range done {
		var record model.TransferRecord
		err := b.db.Where("project_id = ? AND recipient = ? AND status = ?",
			p.ProjectID, p.To.Hex(), model.TransferStatusConfirmed).
			Order("id DESC").
			First(&record).Error
		if err != nil {
			logger.Error("查找对账记录失败: project=%d recipient=%s err=%v",
				p.ProjectID, p.To.Hex(), err)
			continue
		}
		if err := b.db.Model(&record).Update("status", model.TransferStatusInconsistent).Error; err != nil {
			logger.Error("标记对账记录失败: project=%d recipient=%s err=%v",
				p.ProjectID, p.To.Hex(), err)
		}
	}
}
