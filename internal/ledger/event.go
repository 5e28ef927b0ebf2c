package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType 账本事件类型
type EventType string

const (
	EventProjectCreated     EventType = "ProjectCreated"
	EventProjectFunded      EventType = "ProjectFunded"
	EventMilestoneCompleted EventType = "MilestoneCompleted"
	EventFundsReleased      EventType = "FundsReleased"
	EventProjectCancelled   EventType = "ProjectCancelled"
	EventRefundClaimed      EventType = "RefundClaimed"
)

// Event 账本事件，按项目ID关联，追加写出、不可变。
// 外部系统通过事件流重建历史，无需回放全量状态。
type Event struct {
	Type           EventType      `json:"type"`
	ProjectID      uint64         `json:"project_id"`
	Creator        common.Address `json:"creator,omitempty"`
	Contributor    common.Address `json:"contributor,omitempty"`
	Recipient      common.Address `json:"recipient,omitempty"`
	Name           string         `json:"name,omitempty"`
	Amount         uint64         `json:"amount,omitempty"`
	Fee            uint64         `json:"fee,omitempty"`
	MilestoneIndex int            `json:"milestone_index,omitempty"`
	At             time.Time      `json:"at"`
}

// EventSink 事件出口。账本在操作提交后按发生顺序调用 Emit；
// 实现方不应阻塞，也不能回调账本。
type EventSink interface {
	Emit(Event)
}

// NopSink 丢弃所有事件
type NopSink struct{}

func (NopSink) Emit(Event) {}
