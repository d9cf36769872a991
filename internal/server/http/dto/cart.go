package dto

import "time"

// CartItemResponse is one line item of the cart.
type CartItemResponse struct {
	ID             int64  `json:"id"`
	EventID        int64  `json:"event_id"`
	TicketTypeName string `json:"ticket_type_name"`
	SeatID         *int64 `json:"seat_id,omitempty"`
	PriceNet       string `json:"price_net"`
	PriceGross     string `json:"price_gross"`
}

// CartResponse is the full cart snapshot.
type CartResponse struct {
	Order   OrderResponse      `json:"order"`
	Items   []CartItemResponse `json:"items"`
	Invoice *InvoiceResponse   `json:"invoice,omitempty"`
}

// HolderRequest carries attendee data for one line item.
type HolderRequest struct {
	FirstName            string    `json:"first_name" binding:"required"`
	LastName             string    `json:"last_name" binding:"required"`
	BirthDate            time.Time `json:"birth_date" binding:"required"`
	IdentificationNumber string    `json:"identification_number"`
}

// InvoiceRequestToggle flips the invoice-requested flag on the cart.
type InvoiceRequestToggle struct {
	Requested *bool `json:"requested" binding:"required"`
}

// InvoiceRequest carries the invoice draft.
type InvoiceRequest struct {
	InvoiceType  string  `json:"invoice_type" binding:"required"`
	FullName     string  `json:"full_name" binding:"required"`
	CompanyName  *string `json:"company_name"`
	TaxID        *string `json:"tax_id"`
	Street       string  `json:"street" binding:"required"`
	PostalCode   string  `json:"postal_code" binding:"required"`
	City         string  `json:"city" binding:"required"`
	CountryCode  string  `json:"country_code" binding:"required"`
	CurrencyCode string  `json:"currency_code" binding:"required"`
}

// InvoiceResponse mirrors the stored invoice draft.
type InvoiceResponse struct {
	InvoiceNumber *string `json:"invoice_number,omitempty"`
	InvoiceType   string  `json:"invoice_type"`
	FullName      string  `json:"full_name"`
	CompanyName   *string `json:"company_name,omitempty"`
	TaxID         *string `json:"tax_id,omitempty"`
	Street        string  `json:"street"`
	PostalCode    string  `json:"postal_code"`
	City          string  `json:"city"`
	CountryCode   string  `json:"country_code"`
	CurrencyCode  string  `json:"currency_code"`
}
