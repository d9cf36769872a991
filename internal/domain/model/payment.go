package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes one payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "PENDING"
	PaymentStatusRequiresAction PaymentStatus = "REQUIRES_ACTION"
	PaymentStatusCompleted      PaymentStatus = "COMPLETED"
	PaymentStatusFailed         PaymentStatus = "FAILED"
)

// Terminal reports whether the status can never change again.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Active reports whether the attempt still blocks the order.
func (s PaymentStatus) Active() bool {
	return s == PaymentStatusPending || s == PaymentStatusRequiresAction
}

// Payment is one attempt to pay an order's frozen total. The idempotency key
// is unique across all payments; at most one payment per order is active.
type Payment struct {
	ID              int64
	OrderID         int64
	PaymentMethodID int64
	Amount          decimal.Decimal
	Provider        string
	Status          PaymentStatus
	IdempotencyKey  string
	CreatedAt       time.Time
	PaidAt          *time.Time
}

// PaymentMethod is a way to pay offered to customers.
type PaymentMethod struct {
	ID       int64
	Name     string
	IsActive bool
}
