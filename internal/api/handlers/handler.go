package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/treadtrack/treadtrack/internal/models"
	"github.com/treadtrack/treadtrack/internal/service"
	"github.com/treadtrack/treadtrack/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger          *zap.Logger
	tireService     *service.TireService
	analysisService *service.AnalysisService
	positionService *service.PositionService
	vehicles        service.VehicleStore
	tires           service.TireStore
	wsHub           *ws.Hub
	upgrader        websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	tireService *service.TireService,
	analysisService *service.AnalysisService,
	positionService *service.PositionService,
	vehicles service.VehicleStore,
	tires service.TireStore,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:          logger,
		tireService:     tireService,
		analysisService: analysisService,
		positionService: positionService,
		vehicles:        vehicles,
		tires:           tires,
		wsHub:           wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// respondError 统一错误映射：
// 校验错误 400，非法流转 422，0 深度未确认 409，不存在 404，其余 500
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsInvalidTransition(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrZeroDepthNeedsConfirm):
		c.JSON(http.StatusConflict, gin.H{
			"error":                 err.Error(),
			"confirmation_required": true,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleWebSocket 升级为 WebSocket 并接入看板推送
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
