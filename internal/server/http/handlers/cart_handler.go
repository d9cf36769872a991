package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/server/http/dto"
)

// CartHandler manages cart and checkout endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)

	cart, err := h.facade.Cart(c.Request.Context(), userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	items := make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, toCartItemResponse(item))
	}

	c.JSON(http.StatusOK, dto.CartResponse{
		Order:   toOrderResponse(cart.Order),
		Items:   items,
		Invoice: toInvoiceResponse(cart.Invoice),
	})
}

// UpsertHolder handles PUT /api/cart/items/:id/holder.
func (h *CartHandler) UpsertHolder(c *gin.Context) {
	userID := CurrentUserID(c)

	instanceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.HolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	holder := model.TicketHolder{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		BirthDate:            req.BirthDate,
		IdentificationNumber: req.IdentificationNumber,
	}
	if err := h.facade.UpsertTicketHolder(c.Request.Context(), userID, instanceID, holder); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetInvoiceRequested handles PATCH /api/cart/invoice-request.
func (h *CartHandler) SetInvoiceRequested(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.InvoiceRequestToggle
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetInvoiceRequested(c.Request.Context(), userID, *req.Requested); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertInvoice handles PUT /api/cart/invoice.
func (h *CartHandler) UpsertInvoice(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	invoiceType := model.InvoiceType(req.InvoiceType)
	if invoiceType != model.InvoiceTypePersonal && invoiceType != model.InvoiceTypeCompany {
		c.Status(http.StatusBadRequest)
		return
	}

	data := model.InvoiceData{
		InvoiceType:  invoiceType,
		FullName:     req.FullName,
		CompanyName:  req.CompanyName,
		TaxID:        req.TaxID,
		Street:       req.Street,
		PostalCode:   req.PostalCode,
		City:         req.City,
		CountryCode:  req.CountryCode,
		CurrencyCode: req.CurrencyCode,
	}
	if err := h.facade.UpsertInvoice(c.Request.Context(), userID, data); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handles POST /api/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)

	order, err := h.facade.Checkout(c.Request.Context(), userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Reopen handles POST /api/cart/reopen.
func (h *CartHandler) Reopen(c *gin.Context) {
	userID := CurrentUserID(c)

	order, err := h.facade.ReopenCart(c.Request.Context(), userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
