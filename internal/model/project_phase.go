package model

import (
	"time"
)

// ProjectPhase 项目阶段快照，由定时任务从账本视图导出，
// 供索引器和前端查询使用；不回写账本。
type ProjectPhase struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID           uint64    `json:"project_id" gorm:"uniqueIndex;not null"`
	Phase               Phase     `json:"phase" gorm:"not null"`
	Creator             string    `json:"creator" gorm:"not null"`
	FundingGoal         uint64    `json:"funding_goal"`
	TotalFunded         uint64    `json:"total_funded"`
	MilestonesCompleted int       `json:"milestones_completed"`
	TotalMilestones     int       `json:"total_milestones"`
	BackerCount         int       `json:"backer_count"`
	Deadline            time.Time `json:"deadline"`
}

// TableName 指定表名
func (ProjectPhase) TableName() string {
	return "project_phase"
}

// Phase 项目阶段
type Phase string

const (
	PhaseFunding   Phase = "funding"   // 募集中
	PhaseFunded    Phase = "funded"    // 已达标，里程碑进行中
	PhaseCompleted Phase = "completed" // 全部里程碑已放款
	PhaseFailed    Phase = "failed"    // 过期未达标，可退款
	PhaseCancelled Phase = "cancelled" // 已取消
)
