package app

import (
	"context"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/usecase"
)

// BookingFacade is the application surface consumed by HTTP handlers and
// background workers.
type BookingFacade struct {
	booking  *usecase.BookingUseCase
	cart     *usecase.CartUseCase
	payments *usecase.PaymentUseCase
	cleanup  *usecase.CleanupUseCase
}

func NewBookingFacade(booking *usecase.BookingUseCase, cart *usecase.CartUseCase, payments *usecase.PaymentUseCase, cleanup *usecase.CleanupUseCase) *BookingFacade {
	return &BookingFacade{booking: booking, cart: cart, payments: payments, cleanup: cleanup}
}

func (f *BookingFacade) ReserveTicket(ctx context.Context, userID, eventID, eventTicketTypeID int64, seatID *int64) (*usecase.ReservationResult, error) {
	return f.booking.ReserveTicket(ctx, userID, eventID, eventTicketTypeID, seatID)
}

func (f *BookingFacade) RemoveTicketInstance(ctx context.Context, userID, instanceID int64) error {
	return f.booking.RemoveTicketInstance(ctx, userID, instanceID)
}

func (f *BookingFacade) Cart(ctx context.Context, userID int64) (*usecase.Cart, error) {
	return f.cart.GetCart(ctx, userID)
}

func (f *BookingFacade) UpsertTicketHolder(ctx context.Context, userID, instanceID int64, holder model.TicketHolder) error {
	return f.cart.UpsertTicketHolder(ctx, userID, instanceID, holder)
}

func (f *BookingFacade) SetInvoiceRequested(ctx context.Context, userID int64, requested bool) error {
	return f.cart.SetInvoiceRequested(ctx, userID, requested)
}

func (f *BookingFacade) UpsertInvoice(ctx context.Context, userID int64, data model.InvoiceData) error {
	return f.cart.UpsertInvoice(ctx, userID, data)
}

func (f *BookingFacade) Checkout(ctx context.Context, userID int64) (*model.Order, error) {
	return f.cart.Checkout(ctx, userID)
}

func (f *BookingFacade) ReopenCart(ctx context.Context, userID int64) (*model.Order, error) {
	return f.cart.Reopen(ctx, userID)
}

func (f *BookingFacade) StartPayment(ctx context.Context, userID, paymentMethodID int64, idempotencyKey string) (*usecase.StartPaymentResult, error) {
	return f.payments.StartPayment(ctx, userID, paymentMethodID, idempotencyKey)
}

func (f *BookingFacade) FinalizePayment(ctx context.Context, userID, paymentID int64, succeeded bool) (*model.Payment, error) {
	return f.payments.FinalizePayment(ctx, userID, paymentID, succeeded)
}

func (f *BookingFacade) Payment(ctx context.Context, userID, paymentID int64) (*model.Payment, error) {
	return f.payments.GetPayment(ctx, userID, paymentID)
}

func (f *BookingFacade) PaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	return f.payments.ListActivePaymentMethods(ctx)
}

func (f *BookingFacade) CleanupExpiredReservations(ctx context.Context, limit int) (model.CleanupStats, error) {
	return f.cleanup.CleanupExpired(ctx, limit)
}
