package scheduler

import (
	"testing"
	"time"

	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDerivePhase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		project ledger.Project
		want    model.Phase
	}{
		{
			"募集中",
			ledger.Project{Deadline: future},
			model.PhaseFunding,
		},
		{
			"过期未达标",
			ledger.Project{Deadline: past},
			model.PhaseFailed,
		},
		{
			"已达标，里程碑进行中",
			ledger.Project{Deadline: past, FullyFunded: true, MilestonesCompleted: 1, TotalMilestones: 2},
			model.PhaseFunded,
		},
		{
			"全部里程碑已放款",
			ledger.Project{FullyFunded: true, MilestonesCompleted: 2, TotalMilestones: 2},
			model.PhaseCompleted,
		},
		{
			"已取消优先于其他状态",
			ledger.Project{Cancelled: true, FullyFunded: true, Deadline: past},
			model.PhaseCancelled,
		},
		{
			"截止时刻当刻即失败",
			ledger.Project{Deadline: now},
			model.PhaseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePhase(tt.project, now))
		})
	}
}
