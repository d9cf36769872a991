package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/monitoring"
	"github.com/ticketline/ticketline/internal/server/http/dto"
)

// BookingHandler manages reservation endpoints.
type BookingHandler struct {
	facade BookingFacade
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(facade BookingFacade) *BookingHandler {
	return &BookingHandler{facade: facade}
}

// Reserve handles POST /api/booking/reserve.
func (h *BookingHandler) Reserve(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ReserveTicket(c.Request.Context(), userID, req.EventID, req.EventTicketTypeID, req.SeatID)
	if err != nil {
		monitoring.TrackReservation(reservationOutcome(err))
		writeDomainError(c, err)
		return
	}
	monitoring.TrackReservation("ok")

	c.JSON(http.StatusCreated, dto.ReserveResponse{
		Order: toOrderResponse(result.Order),
		Item:  toCartItemResponse(*result.TicketInstance),
	})
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (h *BookingHandler) RemoveItem(c *gin.Context) {
	userID := CurrentUserID(c)

	instanceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.RemoveTicketInstance(c.Request.Context(), userID, instanceID); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reservationOutcome(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrSeatTaken):
		return "seat_taken"
	case errors.Is(err, domainErrors.ErrNoCapacity):
		return "no_capacity"
	case domainErrors.IsConflict(err):
		return "conflict"
	case domainErrors.IsInvalidInput(err):
		return "invalid"
	default:
		return "error"
	}
}
