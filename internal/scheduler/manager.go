package scheduler

import (
	"github.com/blues/escrow/internal/config"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	ledger    *ledger.Ledger
	db        *gorm.DB
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(l *ledger.Ledger, db *gorm.DB, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		ledger:    l,
		db:        db,
		config:    cfg,
	}, nil
}

// Start 启动任务管理器
func Start(l *ledger.Ledger, db *gorm.DB, cfg *config.Config) (*Manager, error) {
	manager, err := NewManager(l, db, cfg)
	if err != nil {
		return nil, err
	}

	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager, nil
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册项目阶段快照任务
	job := NewProjectPhaseJob(m.ledger, m.db, m.config)
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
