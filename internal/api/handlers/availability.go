package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/models"
	"github.com/langchou/fleetgazer/internal/service"
)

// findVehicle 从当前快照按记录 ID 查找
func (h *Handler) findVehicle(c *gin.Context, id string) (models.Vehicle, bool) {
	result, err := service.Dispatch(c.Request.Context(), h.store, service.GetVehiclesRequest{})
	if err != nil {
		h.logger.Error("Failed to load vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vehicles"})
		return models.Vehicle{}, false
	}

	for _, v := range result.(service.VehiclesResult).Vehicles {
		if v.ID == id {
			return v, true
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
	return models.Vehicle{}, false
}

// GetAvailability 查询单辆车的预订可用性
// GET /api/vehicles/:id/availability
func (h *Handler) GetAvailability(c *gin.Context) {
	vehicle, ok := h.findVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := h.scanService.Availability(c.Request.Context(), vehicle, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoExternalID) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Vehicle has no external booking ID"})
			return
		}
		// 预订数据源失败时状态保持未知，不能当作空闲或已占用
		h.logger.Warn("Availability lookup failed",
			zap.String("vehicleId", vehicle.ID),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"data": models.UnresolvedAvailability()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// BatchAvailability 批量查询快照内全部车辆的可用性
// POST /api/availability/batch
func (h *Handler) BatchAvailability(c *gin.Context) {
	loaded, err := service.Dispatch(c.Request.Context(), h.store, service.GetVehiclesRequest{})
	if err != nil {
		h.logger.Error("Failed to load vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vehicles"})
		return
	}
	vehicles := loaded.(service.VehiclesResult).Vehicles

	results := h.scanService.AvailabilityBatch(c.Request.Context(), vehicles)

	c.JSON(http.StatusOK, gin.H{
		"data":  results,
		"total": len(vehicles),
	})
}
