package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ticketline/ticketline/internal/domain/model"
)

// OrderRepository owns the order rows. All mutations happen on rows locked
// by one of the ForUpdate accessors within the current unit of work.
type OrderRepository interface {
	// CreatePendingIfAbsent lazily creates the user's PENDING order. The
	// partial uniqueness constraint on open orders makes the insert a no-op
	// when an open order already exists.
	CreatePendingIfAbsent(ctx context.Context, userID int64, reservedUntil time.Time) error

	GetPending(ctx context.Context, userID int64) (*model.Order, error)
	GetPendingForUpdate(ctx context.Context, userID int64) (*model.Order, error)
	GetAwaitingPayment(ctx context.Context, userID int64) (*model.Order, error)
	GetAwaitingPaymentForUpdate(ctx context.Context, userID int64) (*model.Order, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	// ExtendReservation moves reserved_until forward to until; it never
	// shortens an existing window.
	ExtendReservation(ctx context.Context, orderID int64, until time.Time) error
	SetInvoiceRequested(ctx context.Context, orderID int64, requested bool) error

	// CountUserTicketsForEvent counts the user's line items for the event
	// across PENDING, AWAITING_PAYMENT and COMPLETED orders.
	CountUserTicketsForEvent(ctx context.Context, userID, eventID int64) (int, error)

	// ClaimExpired locks up to limit expired orders in the given status,
	// skipping rows locked by in-flight user operations. For
	// AWAITING_PAYMENT only orders with no active payment qualify.
	ClaimExpired(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	// ClaimExpiredByID relocks a single candidate from an earlier
	// ClaimExpired scan, re-checking the expiry conditions. ErrNotFound
	// means the order is gone, revived or claimed elsewhere.
	ClaimExpiredByID(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
}
