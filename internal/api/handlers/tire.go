package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/treadtrack/treadtrack/internal/service"
)

// CreateTire 创建轮胎
func (h *Handler) CreateTire(c *gin.Context) {
	var req struct {
		VehicleID    string  `json:"vehicle_id" binding:"required"`
		Brand        string  `json:"brand" binding:"required"`
		Dimension    string  `json:"dimension"`
		InitialDepth float64 `json:"initial_depth"` // 省略时用出厂标准 22mm
		PurchaseCost *string `json:"purchase_cost"`
		PositionSlot *string `json:"position_slot"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.CreateTireInput{
		VehicleID:    req.VehicleID,
		Brand:        req.Brand,
		Dimension:    req.Dimension,
		InitialDepth: req.InitialDepth,
		PositionSlot: req.PositionSlot,
	}
	if req.PurchaseCost != nil {
		cost, err := decimal.NewFromString(*req.PurchaseCost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase_cost"})
			return
		}
		in.PurchaseCost = &cost
	}

	tire, err := h.tireService.CreateTire(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": tire})
}

// GetTire 获取轮胎详情（含全部历史序列）
func (h *Handler) GetTire(c *gin.Context) {
	tire, err := h.tires.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tire})
}
