package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// 车辆
		api.POST("/vehicles", h.CreateVehicle)
		api.GET("/vehicles", h.ListVehicles)
		api.GET("/vehicles/:id", h.GetVehicle)
		api.GET("/vehicles/:id/tires", h.ListVehicleTires)

		// 轮胎
		api.POST("/tires", h.CreateTire)
		api.GET("/tires/:id", h.GetTire)

		// 巡检
		api.POST("/tires/:id/inspections", h.RecordInspection)
		api.DELETE("/tires/:id/inspections/:date", h.DeleteInspection)
		api.POST("/inspections/batch", h.RecordInspectionBatch)

		// 生命周期
		api.POST("/tires/:id/lifecycle", h.TransitionLifecycle)
		api.GET("/tires/:id/lifecycle/next", h.LegalNextStages)

		// 按车牌：轮胎、分析、轴布局、换位提交
		api.GET("/plates/:plate/tires", h.ListTiresByPlate)
		api.GET("/plates/:plate/analysis", h.AnalyzeByPlate)
		api.GET("/plates/:plate/layout", h.GetLayout)
		api.POST("/plates/:plate/positions", h.CommitPositions)

		// 车队看板
		api.GET("/fleet/critical", h.ListCriticalTires)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}
