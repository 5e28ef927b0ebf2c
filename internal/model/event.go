package model

import (
	"time"
)

// EventRecord 账本事件日志，追加写入、不可变更。
// 外部系统按 project_id 关联重建项目历史。
type EventRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectID      uint64    `json:"project_id" gorm:"index;not null"`
	EventType      string    `json:"event_type" gorm:"index;not null"`
	Creator        string    `json:"creator,omitempty"`
	Contributor    string    `json:"contributor,omitempty"`
	Recipient      string    `json:"recipient,omitempty"`
	Amount         uint64    `json:"amount"`
	Fee            uint64    `json:"fee"`
	MilestoneIndex int       `json:"milestone_index"`
	Data           string    `json:"data" gorm:"type:text"`
	OccurredAt     time.Time `json:"occurred_at" gorm:"not null"`
}

// TableName 指定表名
func (EventRecord) TableName() string {
	return "event_record"
}
