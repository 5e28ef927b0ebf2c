package scheduler

import (
	"time"

	"github.com/blues/escrow/internal/config"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/logger"
	"github.com/blues/escrow/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectPhaseJob 项目阶段快照任务。
//
// 定期从账本视图导出每个项目的粗粒度阶段写入数据库，供索引器
// 和前端查询；纯派生数据，永远不回写账本。
type ProjectPhaseJob struct {
	ledger *ledger.Ledger
	db     *gorm.DB
	config *config.Config
}

// NewProjectPhaseJob 创建项目阶段快照任务
func NewProjectPhaseJob(l *ledger.Ledger, db *gorm.DB, cfg *config.Config) *ProjectPhaseJob {
	return &ProjectPhaseJob{
		ledger: l,
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectPhaseJob) GetName() string {
	return "project_phase_snapshot"
}

// GetSchedule 获取调度配置
func (j *ProjectPhaseJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectPhaseJob) Execute() {
	now := time.Now()
	projects := j.ledger.GetProjects()

	updated := 0
	for _, p := range projects {
		snapshot := model.ProjectPhase{
			ProjectID:           p.ID,
			Phase:               DerivePhase(p, now),
			Creator:             p.Creator.Hex(),
			FundingGoal:         p.FundingGoal,
			TotalFunded:         p.TotalFunded,
			MilestonesCompleted: p.MilestonesCompleted,
			TotalMilestones:     p.TotalMilestones,
			BackerCount:         p.BackerCount,
			Deadline:            p.Deadline,
		}

		err := j.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"phase", "total_funded", "milestones_completed", "backer_count", "updated_at",
			}),
		}).Create(&snapshot).Error
		if err != nil {
			logger.Error("Failed to snapshot project %d phase: %v", p.ID, err)
			continue
		}
		updated++
	}

	logger.Debug("Project phase snapshot completed. Updated %d projects", updated)
}

// DerivePhase 从项目快照推导粗粒度阶段
func DerivePhase(p ledger.Project, now time.Time) model.Phase {
	switch {
	case p.Cancelled:
		return model.PhaseCancelled
	case p.FullyFunded && p.MilestonesCompleted == p.TotalMilestones:
		return model.PhaseCompleted
	case p.FullyFunded:
		return model.PhaseFunded
	case !now.Before(p.Deadline):
		return model.PhaseFailed
	default:
		return model.PhaseFunding
	}
}
