package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/server/http/dto"
	"github.com/ticketline/ticketline/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return 0
	}
	return id.UserID
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeDomainError maps the sentinel taxonomy to HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case domainErrors.IsInvalidInput(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case domainErrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               order.ID,
		Status:           string(order.Status),
		TotalPrice:       order.TotalPrice.StringFixed(2),
		ReservedUntil:    order.ReservedUntil,
		InvoiceRequested: order.InvoiceRequested,
	}
}

func toCartItemResponse(item model.TicketInstance) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:             item.ID,
		EventID:        item.EventID,
		TicketTypeName: item.TicketTypeNameSnapshot,
		SeatID:         item.SeatID,
		PriceNet:       item.PriceNetSnapshot.StringFixed(2),
		PriceGross:     item.PriceGrossSnapshot.StringFixed(2),
	}
}

func toInvoiceResponse(invoice *model.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceType:   string(invoice.InvoiceType),
		FullName:      invoice.FullName,
		CompanyName:   invoice.CompanyName,
		TaxID:         invoice.TaxID,
		Street:        invoice.Street,
		PostalCode:    invoice.PostalCode,
		City:          invoice.City,
		CountryCode:   invoice.CountryCode,
		CurrencyCode:  invoice.CurrencyCode,
	}
}

func toPaymentResponse(p *model.Payment, redirectURL string) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		OrderID:         p.OrderID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount.StringFixed(2),
		Status:          string(p.Status),
		RedirectURL:     redirectURL,
		PaidAt:          p.PaidAt,
	}
}
