package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/fleetgazer/internal/service"
)

// GetBenefit 查询单辆车的应税货币利益
// GET /api/vehicles/:id/benefit
func (h *Handler) GetBenefit(c *gin.Context) {
	vehicle, ok := h.findVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := h.scanService.Benefit(c.Request.Context(), vehicle)
	if err != nil {
		if errors.Is(err, service.ErrNoExternalID) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Vehicle has no external booking ID"})
			return
		}
		h.logger.Error("Benefit lookup failed",
			zap.String("vehicleId", vehicle.ID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Finance feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
