package repository

import (
	"context"
	"time"

	"github.com/ticketline/ticketline/internal/domain/model"
)

// PaymentRepository owns payment attempts. Payments are never deleted.
type PaymentRepository interface {
	GetMethod(ctx context.Context, paymentMethodID int64) (*model.PaymentMethod, error)
	ListActiveMethods(ctx context.Context) ([]model.PaymentMethod, error)

	GetByIdempotencyKey(ctx context.Context, key string) (*model.Payment, error)
	// GetActiveByOrder returns the order's payment in a non-terminal status,
	// or ErrNotFound.
	GetActiveByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)

	GetByIDForUser(ctx context.Context, paymentID, userID int64) (*model.Payment, error)
	// GetForUpdateByIDAndUser locks the payment and its order together.
	GetForUpdateByIDAndUser(ctx context.Context, paymentID, userID int64) (*model.Payment, *model.Order, error)

	MarkCompleted(ctx context.Context, paymentID int64, paidAt time.Time) error
	MarkFailed(ctx context.Context, paymentID int64) error
}
