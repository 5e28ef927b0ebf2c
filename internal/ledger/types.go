package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// project 项目内部记录
//
// 项目和里程碑在创建时一次性写入，之后只有状态位和计数器会变化；
// 任何记录都不会被删除，便于审计。
type project struct {
	id          uint64
	creator     common.Address
	name        string
	description string
	fundingGoal uint64
	deadline    time.Time
	createdAt   time.Time

	totalFunded         uint64
	milestonesCompleted int
	cancelled           bool
	fullyFunded         bool

	milestones []milestone

	// 出资人记录：同一地址多次出资累加到同一条记录
	backers     map[common.Address]*backer
	backerOrder []common.Address
}

// milestone 里程碑内部记录，金额在创建时固定
type milestone struct {
	description string
	fundAmount  uint64
	completed   bool
}

// backer 出资人内部记录
type backer struct {
	amount   uint64
	refunded bool
}

// Project 项目视图（只读快照）
type Project struct {
	ID                  uint64         `json:"id"`
	Creator             common.Address `json:"creator"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	FundingGoal         uint64         `json:"funding_goal"`
	Deadline            time.Time      `json:"deadline"`
	TotalFunded         uint64         `json:"total_funded"`
	MilestonesCompleted int            `json:"milestones_completed"`
	TotalMilestones     int            `json:"total_milestones"`
	BackerCount         int            `json:"backer_count"`
	FullyFunded         bool           `json:"fully_funded"`
	Cancelled           bool           `json:"cancelled"`
	CreatedAt           time.Time      `json:"created_at"`
}

// Milestone 里程碑视图
type Milestone struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	FundAmount  uint64 `json:"fund_amount"`
	Completed   bool   `json:"completed"`
}

// Backer 出资人视图
type Backer struct {
	Address  common.Address `json:"address"`
	Amount   uint64         `json:"amount"`
	Refunded bool           `json:"refunded"`
}

// snapshot 生成项目只读快照
func (p *project) snapshot() Project {
	return Project{
		ID:                  p.id,
		Creator:             p.creator,
		Name:                p.name,
		Description:         p.description,
		FundingGoal:         p.fundingGoal,
		Deadline:            p.deadline,
		TotalFunded:         p.totalFunded,
		MilestonesCompleted: p.milestonesCompleted,
		TotalMilestones:     len(p.milestones),
		BackerCount:         len(p.backerOrder),
		FullyFunded:         p.fullyFunded,
		Cancelled:           p.cancelled,
		CreatedAt:           p.createdAt,
	}
}

// milestoneViews 生成里程碑只读快照序列
func (p *project) milestoneViews() []Milestone {
	views := make([]Milestone, len(p.milestones))
	for i, m := range p.milestones {
		views[i] = Milestone{
			Index:       i,
			Description: m.description,
			FundAmount:  m.fundAmount,
			Completed:   m.completed,
		}
	}
	return views
}
