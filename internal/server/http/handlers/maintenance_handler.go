package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ticketline/ticketline/internal/server/http/dto"
)

const defaultCleanupLimit = 100

// MaintenanceHandler manages operator-only endpoints.
type MaintenanceHandler struct {
	facade MaintenanceFacade
}

// NewMaintenanceHandler constructs MaintenanceHandler.
func NewMaintenanceHandler(facade MaintenanceFacade) *MaintenanceHandler {
	return &MaintenanceHandler{facade: facade}
}

// CleanupExpired handles POST /api/admin/maintenance/cleanup-expired.
func (h *MaintenanceHandler) CleanupExpired(c *gin.Context) {
	limit := defaultCleanupLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	stats, err := h.facade.CleanupExpiredReservations(c.Request.Context(), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CleanupResponse{
		OrdersCancelled: stats.OrdersCancelled,
		TicketsReleased: stats.TicketsReleased,
		GAUnitsReleased: stats.GAUnitsReleased,
	})
}
