package router

import (
	"github.com/blues/escrow/internal/bank"
	"github.com/blues/escrow/internal/handler"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/store"
	"github.com/gin-gonic/gin"
)

func Setup(l *ledger.Ledger, b bank.Bank, journal *store.EventJournal) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "escrow-ledger",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		projectHandler := handler.NewProjectHandler(l)
		fundHandler := handler.NewFundHandler(l, b)
		milestoneHandler := handler.NewMilestoneHandler(l)
		refundHandler := handler.NewRefundHandler(l)
		platformHandler := handler.NewPlatformHandler(l)

		// 项目相关路由
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/milestones", projectHandler.GetMilestones)
			projects.POST("/:id/milestones/:index/complete", milestoneHandler.CompleteMilestone)
			projects.POST("/:id/fund", fundHandler.FundProject)
			projects.POST("/:id/cancel", projectHandler.CancelProject)
			projects.POST("/:id/refund", refundHandler.ClaimRefund)
			projects.GET("/:id/backers", fundHandler.GetBackers)
			projects.GET("/:id/backers/count", fundHandler.GetBackerCount)
			projects.GET("/:id/backers/:address", fundHandler.GetBackerAmount)
		}

		// 事件日志路由（需要数据库）
		if journal != nil {
			eventHandler := handler.NewEventHandler(journal)
			projects.GET("/:id/events", eventHandler.GetProjectEvents)
		}

		// 平台管理路由
		platform := v1.Group("/platform")
		{
			platform.GET("", platformHandler.GetPlatform)
			platform.PUT("/treasury", platformHandler.SetTreasury)
			platform.PUT("/fee", platformHandler.SetPlatformFee)
			platform.PUT("/owner", platformHandler.TransferOwnership)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
