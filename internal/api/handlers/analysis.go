package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/treadtrack/treadtrack/internal/wear"
)

// AnalyzeByPlate 按车牌生成分析视图（看板消费的只读结果）
func (h *Handler) AnalyzeByPlate(c *gin.Context) {
	analysis, err := h.analysisService.AnalyzeByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": analysis})
}

// ListCriticalTires 全车队临界清单
func (h *Handler) ListCriticalTires(c *gin.Context) {
	critical, err := h.analysisService.CriticalTires(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if critical == nil {
		critical = []wear.CriticalTire{}
	}
	c.JSON(http.StatusOK, gin.H{"data": critical})
}
