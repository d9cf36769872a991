package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the cart lifecycle.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// Open reports whether the status counts against the one-open-order-per-user
// invariant.
func (s OrderStatus) Open() bool {
	return s == OrderStatusPending || s == OrderStatusAwaitingPayment
}

// Order is a user's cart. At most one order per user may be in an open
// status at any time.
type Order struct {
	ID               int64
	UserID           int64
	Status           OrderStatus
	TotalPrice       decimal.Decimal
	ReservedUntil    *time.Time
	InvoiceRequested bool
	CreatedAt        time.Time
}

// Expired reports whether the reservation window has lapsed at now.
// An order without a reservation window is never expired.
func (o *Order) Expired(now time.Time) bool {
	return o.ReservedUntil != nil && o.ReservedUntil.Before(now)
}
