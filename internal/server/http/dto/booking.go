package dto

import "time"

// ReserveRequest describes a reservation attempt payload.
type ReserveRequest struct {
	EventID           int64  `json:"event_id" binding:"required"`
	EventTicketTypeID int64  `json:"event_ticket_type_id" binding:"required"`
	SeatID            *int64 `json:"seat_id"`
}

// ReserveResponse is the created line item plus the cart it landed in.
type ReserveResponse struct {
	Order OrderResponse    `json:"order"`
	Item  CartItemResponse `json:"item"`
}

// OrderResponse is the order snapshot shared by booking and cart endpoints.
type OrderResponse struct {
	ID               int64      `json:"id"`
	Status           string     `json:"status"`
	TotalPrice       string     `json:"total_price"`
	ReservedUntil    *time.Time `json:"reserved_until,omitempty"`
	InvoiceRequested bool       `json:"invoice_requested"`
}
