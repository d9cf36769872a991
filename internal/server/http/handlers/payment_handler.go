package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/monitoring"
	"github.com/ticketline/ticketline/internal/server/http/dto"
)

const idempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler manages payment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Methods handles GET /api/cart/payment-methods.
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods, err := h.facade.PaymentMethods(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		resp = append(resp, dto.PaymentMethodResponse{ID: m.ID, Name: m.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// Start handles POST /api/cart/payments/start.
func (h *PaymentHandler) Start(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	key := c.GetHeader(idempotencyKeyHeader)

	result, err := h.facade.StartPayment(c.Request.Context(), userID, req.PaymentMethodID, key)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Payment.Status.Terminal() {
		status = http.StatusOK
	}
	c.JSON(status, toPaymentResponse(result.Payment, result.RedirectURL))
}

// Finalize handles POST /api/cart/payments/:id/finalize.
func (h *PaymentHandler) Finalize(c *gin.Context) {
	userID := CurrentUserID(c)

	paymentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.FinalizePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.FinalizePayment(c.Request.Context(), userID, paymentID, *req.Succeeded)
	if err != nil {
		monitoring.TrackPaymentFinalized("error")
		writeDomainError(c, err)
		return
	}
	if payment.Status == model.PaymentStatusCompleted {
		monitoring.TrackPaymentFinalized("completed")
	} else {
		monitoring.TrackPaymentFinalized("failed")
	}

	c.JSON(http.StatusOK, toPaymentResponse(payment, ""))
}

// Get handles GET /api/cart/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)

	paymentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	payment, err := h.facade.Payment(c.Request.Context(), userID, paymentID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment, ""))
}
