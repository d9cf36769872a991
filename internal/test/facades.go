package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/usecase"
)

// FacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions return benign defaults.
type FacadeStub struct {
	ReserveFn             func(context.Context, int64, int64, int64, *int64) (*usecase.ReservationResult, error)
	RemoveFn              func(context.Context, int64, int64) error
	CartFn                func(context.Context, int64) (*usecase.Cart, error)
	UpsertHolderFn        func(context.Context, int64, int64, model.TicketHolder) error
	SetInvoiceRequestedFn func(context.Context, int64, bool) error
	UpsertInvoiceFn       func(context.Context, int64, model.InvoiceData) error
	CheckoutFn            func(context.Context, int64) (*model.Order, error)
	ReopenFn              func(context.Context, int64) (*model.Order, error)
	StartPaymentFn        func(context.Context, int64, int64, string) (*usecase.StartPaymentResult, error)
	FinalizePaymentFn     func(context.Context, int64, int64, bool) (*model.Payment, error)
	PaymentFn             func(context.Context, int64, int64) (*model.Payment, error)
	PaymentMethodsFn      func(context.Context) ([]model.PaymentMethod, error)
	CleanupFn             func(context.Context, int) (model.CleanupStats, error)
}

func defaultOrder() *model.Order {
	return &model.Order{ID: 1, UserID: 1, Status: model.OrderStatusPending, TotalPrice: decimal.Zero}
}

func (s *FacadeStub) ReserveTicket(ctx context.Context, userID, eventID, eventTicketTypeID int64, seatID *int64) (*usecase.ReservationResult, error) {
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, userID, eventID, eventTicketTypeID, seatID)
	}
	return &usecase.ReservationResult{
		Order:          defaultOrder(),
		TicketInstance: &model.TicketInstance{ID: 1, OrderID: 1, EventID: eventID},
	}, nil
}

func (s *FacadeStub) RemoveTicketInstance(ctx context.Context, userID, instanceID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, instanceID)
	}
	return nil
}

func (s *FacadeStub) Cart(ctx context.Context, userID int64) (*usecase.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &usecase.Cart{Order: defaultOrder()}, nil
}

func (s *FacadeStub) UpsertTicketHolder(ctx context.Context, userID, instanceID int64, holder model.TicketHolder) error {
	if s.UpsertHolderFn != nil {
		return s.UpsertHolderFn(ctx, userID, instanceID, holder)
	}
	return nil
}

func (s *FacadeStub) SetInvoiceRequested(ctx context.Context, userID int64, requested bool) error {
	if s.SetInvoiceRequestedFn != nil {
		return s.SetInvoiceRequestedFn(ctx, userID, requested)
	}
	return nil
}

func (s *FacadeStub) UpsertInvoice(ctx context.Context, userID int64, data model.InvoiceData) error {
	if s.UpsertInvoiceFn != nil {
		return s.UpsertInvoiceFn(ctx, userID, data)
	}
	return nil
}

func (s *FacadeStub) Checkout(ctx context.Context, userID int64) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID)
	}
	order := defaultOrder()
	order.Status = model.OrderStatusAwaitingPayment
	return order, nil
}

func (s *FacadeStub) ReopenCart(ctx context.Context, userID int64) (*model.Order, error) {
	if s.ReopenFn != nil {
		return s.ReopenFn(ctx, userID)
	}
	return defaultOrder(), nil
}

func (s *FacadeStub) StartPayment(ctx context.Context, userID, paymentMethodID int64, idempotencyKey string) (*usecase.StartPaymentResult, error) {
	if s.StartPaymentFn != nil {
		return s.StartPaymentFn(ctx, userID, paymentMethodID, idempotencyKey)
	}
	return &usecase.StartPaymentResult{
		Payment: &model.Payment{ID: 1, OrderID: 1, PaymentMethodID: paymentMethodID, Status: model.PaymentStatusRequiresAction, IdempotencyKey: idempotencyKey},
	}, nil
}

func (s *FacadeStub) FinalizePayment(ctx context.Context, userID, paymentID int64, succeeded bool) (*model.Payment, error) {
	if s.FinalizePaymentFn != nil {
		return s.FinalizePaymentFn(ctx, userID, paymentID, succeeded)
	}
	status := model.PaymentStatusFailed
	if succeeded {
		status = model.PaymentStatusCompleted
	}
	return &model.Payment{ID: paymentID, OrderID: 1, Status: status}, nil
}

func (s *FacadeStub) Payment(ctx context.Context, userID, paymentID int64) (*model.Payment, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, userID, paymentID)
	}
	return &model.Payment{ID: paymentID, OrderID: 1, Status: model.PaymentStatusRequiresAction}, nil
}

func (s *FacadeStub) PaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	if s.PaymentMethodsFn != nil {
		return s.PaymentMethodsFn(ctx)
	}
	return []model.PaymentMethod{{ID: 1, Name: "card", IsActive: true}}, nil
}

func (s *FacadeStub) CleanupExpiredReservations(ctx context.Context, limit int) (model.CleanupStats, error) {
	if s.CleanupFn != nil {
		return s.CleanupFn(ctx, limit)
	}
	return model.CleanupStats{}, nil
}
