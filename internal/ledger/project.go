package ledger

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MaxDurationDays 众筹时长上限（天）
const MaxDurationDays = 90

// CreateProject 创建项目并原子地写入里程碑序列，返回项目ID。
//
// 里程碑金额之和必须与目标金额精确相等（整数相等，无舍入容差），
// 该不变量只在创建时校验一次，之后不再重算。
func (l *Ledger) CreateProject(creator common.Address, name, description string, fundingGoal uint64, durationDays int, milestoneDescs []string, milestoneAmounts []uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if fundingGoal == 0 {
		return 0, ErrInvalidGoal
	}
	if durationDays < 1 || durationDays > MaxDurationDays {
		return 0, ErrInvalidDuration
	}
	if len(milestoneDescs) == 0 || len(milestoneDescs) != len(milestoneAmounts) {
		return 0, ErrMilestoneMismatch
	}
	var sum uint64
	for _, amount := range milestoneAmounts {
		// 求和回绕时真实总额必然超过目标金额
		if sum+amount < sum {
			return 0, ErrGoalMismatch
		}
		sum += amount
	}
	if sum != fundingGoal {
		return 0, ErrGoalMismatch
	}

	now := l.now()
	p := &project{
		id:          uint64(len(l.projects)),
		creator:     creator,
		name:        name,
		description: description,
		fundingGoal: fundingGoal,
		deadline:    now.Add(time.Duration(durationDays) * 24 * time.Hour),
		createdAt:   now,
		milestones:  make([]milestone, len(milestoneDescs)),
		backers:     make(map[common.Address]*backer),
	}
	for i := range milestoneDescs {
		p.milestones[i] = milestone{
			description: milestoneDescs[i],
			fundAmount:  milestoneAmounts[i],
		}
	}
	l.projects = append(l.projects, p)

	l.sink.Emit(Event{
		Type:      EventProjectCreated,
		ProjectID: p.id,
		Creator:   creator,
		Name:      name,
		Amount:    fundingGoal,
		At:        now,
	})
	return p.id, nil
}

// CancelProject 取消项目，仅限创建者。
// 一旦有任何里程碑完成放款，项目就不能再取消。
func (l *Ledger) CancelProject(caller common.Address, projectID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return err
	}
	if caller != p.creator {
		return ErrNotCreator
	}
	if p.cancelled {
		return ErrProjectCancelled
	}
	if p.milestonesCompleted > 0 {
		return ErrHasCompletedPayout
	}

	p.cancelled = true

	l.sink.Emit(Event{
		Type:      EventProjectCancelled,
		ProjectID: p.id,
		Creator:   p.creator,
		At:        l.now(),
	})
	return nil
}

// GetProject 获取项目快照
func (l *Ledger) GetProject(projectID uint64) (Project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return Project{}, err
	}
	return p.snapshot(), nil
}

// GetProjects 获取全部项目快照，按项目ID升序
func (l *Ledger) GetProjects() []Project {
	l.mu.Lock()
	defer l.mu.Unlock()

	views := make([]Project, len(l.projects))
	for i, p := range l.projects {
		views[i] = p.snapshot()
	}
	return views
}

// GetMilestones 获取项目的里程碑序列快照
func (l *Ledger) GetMilestones(projectID uint64) ([]Milestone, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.lookup(projectID)
	if err != nil {
		return nil, err
	}
	return p.milestoneViews(), nil
}
