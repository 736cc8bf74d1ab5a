package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/models"
)

// CreateVehicle 创建车辆
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req struct {
		Plate string `json:"plate" binding:"required"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle := &models.Vehicle{Plate: req.Plate, Name: req.Name}
	if err := h.vehicles.Create(c.Request.Context(), vehicle); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Vehicle created", zap.String("plate", vehicle.Plate))
	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// ListVehicles 获取车辆列表
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// GetVehicle 获取车辆详情
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// ListVehicleTires 获取车辆的全部轮胎
func (h *Handler) ListVehicleTires(c *gin.Context) {
	tires, err := h.tires.ListByVehicleID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tires})
}

// ListTiresByPlate 按车牌获取轮胎
func (h *Handler) ListTiresByPlate(c *gin.Context) {
	vehicle, err := h.vehicles.GetByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	tires, err := h.tires.ListByVehicleID(c.Request.Context(), vehicle.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tires})
}
