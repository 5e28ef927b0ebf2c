package main

import (
	"github.com/asaskevich/EventBus"
	"github.com/blues/escrow/internal/bank"
	"github.com/blues/escrow/internal/config"
	"github.com/blues/escrow/internal/ethereum"
	"github.com/blues/escrow/internal/event"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/logger"
	"github.com/blues/escrow/internal/router"
	"github.com/blues/escrow/internal/scheduler"
	"github.com/blues/escrow/internal/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := store.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化出金通道：链上模式走托管账户转账，本地模式走进程内记账
	var payout bank.Bank
	if cfg.Chain.Enabled {
		ethClient, err := ethereum.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize ethereum client: %v", err)
		}
		payout = bank.NewChainBank(ethClient, db)
		logger.Info("Chain bank enabled, escrow account: %s", ethClient.AccountAddress().Hex())
	} else {
		payout = bank.NewMemoryBank()
		logger.Info("Memory bank enabled (local mode)")
	}

	// 初始化事件分发器
	journal := store.NewEventJournal(db)
	dispatcher, err := event.NewDispatcher(journal, EventBus.New())
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// 初始化托管账本
	if !common.IsHexAddress(cfg.Platform.Owner) || !common.IsHexAddress(cfg.Platform.Treasury) {
		logger.Fatal("Invalid platform owner or treasury address")
	}
	l, err := ledger.New(
		common.HexToAddress(cfg.Platform.Owner),
		common.HexToAddress(cfg.Platform.Treasury),
		cfg.Platform.FeeBps,
		payout,
		dispatcher,
	)
	if err != nil {
		logger.Fatal("Failed to initialize ledger: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(l, payout, journal)

	// 启动定时任务
	manager, err := scheduler.Start(l, db, cfg)
	if err != nil {
		logger.Fatal("Failed to start scheduler: %v", err)
	}
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
