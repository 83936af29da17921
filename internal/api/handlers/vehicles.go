package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/models"
	"github.com/langchou/fleetgazer/internal/service"
	"github.com/langchou/fleetgazer/internal/state"
)

// ListVehicles 获取记录列表
// 排序/过滤由查询参数构成的视图状态驱动，核心数据保持原序持久化
func (h *Handler) ListVehicles(c *gin.Context) {
	result, err := service.Dispatch(c.Request.Context(), h.store, service.GetVehiclesRequest{})
	if err != nil {
		h.logger.Error("Failed to list vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}
	vehicles := result.(service.VehiclesResult)

	view := models.ViewState{
		SortKey:    c.DefaultQuery("sort", models.SortByPlate),
		Descending: c.Query("dir") == "desc",
		Query:      c.Query("q"),
	}

	filtered := models.FilterVehicles(vehicles.Vehicles, view.Query)
	sorted := models.SortVehicles(filtered, view.SortKey, view.Descending)

	c.JSON(http.StatusOK, gin.H{
		"data":      sorted,
		"newPlates": vehicles.NewPlates,
		"view":      view,
	})
}

// GetStats 获取快照统计
func (h *Handler) GetStats(c *gin.Context) {
	result, err := service.Dispatch(c.Request.Context(), h.store, service.GetStatsRequest{})
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.(service.StatsResult).Stats})
}

// TriggerScan 触发一次扫描
// POST /api/scan
func (h *Handler) TriggerScan(c *gin.Context) {
	result, err := h.scanService.Scan(c.Request.Context())
	if err != nil {
		if errors.Is(err, state.ErrScanInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "Scan already in progress"})
			return
		}
		h.logger.Error("Scan failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetScanSession 当前扫描会话状态
func (h *Handler) GetScanSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.scanService.Session()})
}

// ClearNewMarkers 清除所有新增标记
// POST /api/markers/clear
func (h *Handler) ClearNewMarkers(c *gin.Context) {
	if _, err := service.Dispatch(c.Request.Context(), h.store, service.ClearNewMarkersRequest{}); err != nil {
		h.logger.Error("Failed to clear markers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear markers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Markers cleared"})
}

// ClearData 清空全部持久化数据
// DELETE /api/data
func (h *Handler) ClearData(c *gin.Context) {
	if _, err := service.Dispatch(c.Request.Context(), h.store, service.ClearDataRequest{}); err != nil {
		h.logger.Error("Failed to clear data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data cleared"})
}
