package store

import (
	"encoding/json"
	"fmt"

	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// EventJournal 事件日志仓库，只追加、不更新
type EventJournal struct {
	db *gorm.DB
}

// NewEventJournal 创建事件日志仓库
func NewEventJournal(db *gorm.DB) *EventJournal {
	return &EventJournal{db: db}
}

// Append 追加一条账本事件
func (j *EventJournal) Append(ev ledger.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	record := model.EventRecord{
		ProjectID:      ev.ProjectID,
		EventType:      string(ev.Type),
		Creator:        hexOrEmpty(ev.Creator),
		Contributor:    hexOrEmpty(ev.Contributor),
		Recipient:      hexOrEmpty(ev.Recipient),
		Amount:         ev.Amount,
		Fee:            ev.Fee,
		MilestoneIndex: ev.MilestoneIndex,
		Data:           string(data),
		OccurredAt:     ev.At,
	}
	if err := j.db.Create(&record).Error; err != nil {
		return fmt.Errorf("写入事件日志失败: %w", err)
	}
	return nil
}

// ListByProject 按项目分页查询事件日志，按发生顺序返回
func (j *EventJournal) ListByProject(projectID uint64, page, pageSize int) ([]model.EventRecord, int64, error) {
	var records []model.EventRecord
	var total int64

	if err := j.db.Model(&model.EventRecord{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询事件总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := j.db.Where("project_id = ?", projectID).
		Order("id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("查询事件日志失败: %w", err)
	}

	return records, total, nil
}

// hexOrEmpty 零地址序列化为空串，避免日志里全是零值地址
func hexOrEmpty(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addr.Hex()
}
