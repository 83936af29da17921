package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/service"
	"github.com/langchou/fleetgazer/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger      *zap.Logger
	store       service.SnapshotStore
	scanService *service.ScanService
	wsHub       *ws.Hub
	upgrader    websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	store service.SnapshotStore,
	scanService *service.ScanService,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:      logger,
		store:       store,
		scanService: scanService,
		wsHub:       wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 记录与统计
		api.GET("/vehicles", h.ListVehicles)
		api.GET("/stats", h.GetStats)

		// 扫描与标记
		api.POST("/scan", h.TriggerScan)
		api.GET("/scan/session", h.GetScanSession)
		api.POST("/markers/clear", h.ClearNewMarkers)
		api.DELETE("/data", h.ClearData)

		// 远程 feed 派生数据
		api.GET("/vehicles/:id/availability", h.GetAvailability)
		api.GET("/vehicles/:id/benefit", h.GetBenefit)
		api.POST("/availability/batch", h.BatchAvailability)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"scan_state": h.scanService.Session().State,
		"ws_clients": h.wsHub.ClientCount(),
	})
}
