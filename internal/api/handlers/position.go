package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/internal/service"
)

// CommitPositions 整车提交槽位分配（单车单请求，原子提交）
func (h *Handler) CommitPositions(c *gin.Context) {
	var req struct {
		Assigned  map[string]string `json:"assigned"`  // slot -> tireID
		Inventory []string          `json:"inventory"` // 库存桶
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes, err := h.positionService.Commit(c.Request.Context(), c.Param("plate"), service.CommitInput{
		Assigned:  req.Assigned,
		Inventory: req.Inventory,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if changes == nil {
		changes = []models.PositionChange{}
	}
	c.JSON(http.StatusOK, gin.H{"data": changes})
}

// GetLayout 按已分配轮胎数推导的轴布局及轮胎列表
func (h *Handler) GetLayout(c *gin.Context) {
	layout, tires, err := h.positionService.Layout(c.Request.Context(), c.Param("plate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"layout": layout,
			"tires":  tires,
		},
	})
}
