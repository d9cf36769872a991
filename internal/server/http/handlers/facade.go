package handlers

import (
	"context"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/usecase"
)

// BookingFacade describes reservation operations exposed via HTTP.
type BookingFacade interface {
	ReserveTicket(ctx context.Context, userID, eventID, eventTicketTypeID int64, seatID *int64) (*usecase.ReservationResult, error)
	RemoveTicketInstance(ctx context.Context, userID, instanceID int64) error
}

// CartFacade provides cart and checkout operations.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*usecase.Cart, error)
	UpsertTicketHolder(ctx context.Context, userID, instanceID int64, holder model.TicketHolder) error
	SetInvoiceRequested(ctx context.Context, userID int64, requested bool) error
	UpsertInvoice(ctx context.Context, userID int64, data model.InvoiceData) error
	Checkout(ctx context.Context, userID int64) (*model.Order, error)
	ReopenCart(ctx context.Context, userID int64) (*model.Order, error)
}

// PaymentFacade provides payment operations.
type PaymentFacade interface {
	StartPayment(ctx context.Context, userID, paymentMethodID int64, idempotencyKey string) (*usecase.StartPaymentResult, error)
	FinalizePayment(ctx context.Context, userID, paymentID int64, succeeded bool) (*model.Payment, error)
	Payment(ctx context.Context, userID, paymentID int64) (*model.Payment, error)
	PaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
}

// MaintenanceFacade provides operator-only operations.
type MaintenanceFacade interface {
	CleanupExpiredReservations(ctx context.Context, limit int) (model.CleanupStats, error)
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	BookingFacade
	CartFacade
	PaymentFacade
	MaintenanceFacade
}
