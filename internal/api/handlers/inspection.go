package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/treadtrack/treadtrack/internal/service"
)

// inspectionRequest 巡检录入请求体
type inspectionRequest struct {
	TireID      string   `json:"tire_id"` // 批量接口使用；单胎接口以路径参数为准
	InnerDepth  *float64 `json:"inner_depth" binding:"required"`
	CenterDepth *float64 `json:"center_depth" binding:"required"`
	OuterDepth  *float64 `json:"outer_depth" binding:"required"`
	Odometer    *float64 `json:"odometer" binding:"required"`
	ImageRef    *string  `json:"image_ref"`
	Date        *string  `json:"date"` // RFC3339，省略时取当前时间
	ConfirmZero bool     `json:"confirm_zero"`
}

func (r *inspectionRequest) toInput(tireID string) (service.RecordInspectionInput, error) {
	in := service.RecordInspectionInput{
		TireID:      tireID,
		InnerDepth:  *r.InnerDepth,
		CenterDepth: *r.CenterDepth,
		OuterDepth:  *r.OuterDepth,
		Odometer:    *r.Odometer,
		ImageRef:    r.ImageRef,
		ConfirmZero: r.ConfirmZero,
	}
	if r.Date != nil {
		date, err := time.Parse(time.RFC3339, *r.Date)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	return in, nil
}

// RecordInspection 录入一条巡检
func (h *Handler) RecordInspection(c *gin.Context) {
	var req inspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, err := req.toInput(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected RFC3339"})
		return
	}

	inspection, err := h.tireService.RecordInspection(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": inspection})
}

// RecordInspectionBatch 批量录入巡检：尽力而为，逐项上报结果，
// 已成功项不因其他项失败而回滚
func (h *Handler) RecordInspectionBatch(c *gin.Context) {
	var req struct {
		Items []inspectionRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]service.RecordInspectionInput, 0, len(req.Items))
	for _, item := range req.Items {
		in, err := item.toInput(item.TireID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected RFC3339"})
			return
		}
		inputs = append(inputs, in)
	}

	results := h.tireService.RecordInspectionBatch(c.Request.Context(), inputs)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	c.JSON(http.StatusMultiStatus, gin.H{
		"data":   results,
		"failed": failed,
	})
}

// DeleteInspection 删除指定日期的单条巡检
func (h *Handler) DeleteInspection(c *gin.Context) {
	date, err := time.Parse(time.RFC3339, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected RFC3339"})
		return
	}

	if err := h.tireService.DeleteInspection(c.Request.Context(), c.Param("id"), date); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "inspection deleted"})
}
