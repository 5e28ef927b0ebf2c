package model

import (
	"time"
)

// TransferRecord 出金记录，链上出金通道每次付款都会落一条，用于对账
type TransferRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID uint64 `json:"project_id" gorm:"index;not null"`
	Recipient string `json:"recipient" gorm:"not null"`
	Amount    uint64 `json:"amount" gorm:"not null"`
	Kind      string `json:"kind" gorm:"not null"` // milestone, fee, refund
	TxHash    string `json:"tx_hash"`
	Status    string `json:"status" gorm:"default:'pending'"`
}

// TableName 指定表名
func (TransferRecord) TableName() string {
	return "transfer_record"
}

// 出金记录状态
const (
	TransferStatusPending      = "pending"      // 已广播，等待确认
	TransferStatusConfirmed    = "confirmed"    // 已确认
	TransferStatusFailed       = "failed"       // 广播前失败，无链上痕迹
	TransferStatusInconsistent = "inconsistent" // 批次部分成功，需要人工对账
)
