package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/internal/service"
)

// TransitionLifecycle 执行生命周期流转
func (h *Handler) TransitionLifecycle(c *gin.Context) {
	var req struct {
		Stage       string  `json:"stage" binding:"required"`
		TreadDesign string  `json:"tread_design"`
		RetreadCost *string `json:"retread_cost"` // 翻新目标必填且为正
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.TransitionInput{
		Stage:       models.Stage(req.Stage),
		TreadDesign: req.TreadDesign,
	}
	if req.RetreadCost != nil {
		cost, err := decimal.NewFromString(*req.RetreadCost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid retread_cost"})
			return
		}
		in.RetreadCost = &cost
	}

	result, err := h.tireService.Transition(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// LegalNextStages 当前阶段的合法去向（供表单下拉）
func (h *Handler) LegalNextStages(c *gin.Context) {
	stages, err := h.tireService.LegalNextStages(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if stages == nil {
		stages = []models.Stage{}
	}
	c.JSON(http.StatusOK, gin.H{"data": stages})
}
