package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

// Cart is the user's open order together with its line items and, when
// requested, the invoice draft.
type Cart struct {
	Order   *model.Order
	Items   []model.TicketInstance
	Invoice *model.Invoice
}

// CartUseCase covers everything between reserving tickets and paying:
// holder data, invoice details, checkout and reopening.
type CartUseCase struct {
	uow repository.UnitOfWork
	ttl time.Duration
	now func() time.Time
}

func NewCartUseCase(uow repository.UnitOfWork, ttl time.Duration) *CartUseCase {
	return &CartUseCase{uow: uow, ttl: ttl, now: time.Now}
}

// GetCart returns the user's open order with its items. The order may be
// PENDING or AWAITING_PAYMENT; absence maps to ErrNotFound.
func (u *CartUseCase) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	var cart *Cart
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetPending(ctx, userID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			order, err = r.Orders().GetAwaitingPayment(ctx, userID)
		}
		if err != nil {
			return err
		}

		items, err := r.Tickets().ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}

		cart = &Cart{Order: order, Items: items}
		if order.InvoiceRequested {
			invoice, err := r.Invoices().GetByOrder(ctx, order.ID)
			if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
				return err
			}
			cart.Invoice = invoice
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpsertTicketHolder attaches attendee data to one line item of the user's
// pending order.
func (u *CartUseCase) UpsertTicketHolder(ctx context.Context, userID, instanceID int64, holder model.TicketHolder) error {
	return u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		instance, err := r.Tickets().GetByIDForOrder(ctx, instanceID, order.ID)
		if err != nil {
			return err
		}
		holder.TicketInstanceID = instance.ID
		_, err = r.Tickets().UpsertHolder(ctx, &holder)
		return err
	})
}

// SetInvoiceRequested flips the invoice flag on the pending order. Turning
// the flag off leaves a previously saved invoice draft in place.
func (u *CartUseCase) SetInvoiceRequested(ctx context.Context, userID int64, requested bool) error {
	return u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		return r.Orders().SetInvoiceRequested(ctx, order.ID, requested)
	})
}

// UpsertInvoice stores the invoice draft for the pending order. Company
// invoices require a company name and tax id.
func (u *CartUseCase) UpsertInvoice(ctx context.Context, userID int64, data model.InvoiceData) error {
	if data.InvoiceType == model.InvoiceTypeCompany &&
		(data.CompanyName == nil || *data.CompanyName == "" || data.TaxID == nil || *data.TaxID == "") {
		return domainErrors.ErrInvoiceDataMissing
	}
	return u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		_, err = r.Invoices().Upsert(ctx, order.ID, data)
		return err
	})
}

// Checkout moves the pending order to AWAITING_PAYMENT after validating it
// is complete, and refreshes the reservation window for the payment step.
func (u *CartUseCase) Checkout(ctx context.Context, userID int64) (*model.Order, error) {
	var checked *model.Order
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		now := u.now()

		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if order.Expired(now) {
			return domainErrors.ErrReservationExpired
		}

		count, err := r.Tickets().CountByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return domainErrors.ErrCartEmpty
		}

		missing, err := r.Tickets().CountMissingHolders(ctx, order.ID)
		if err != nil {
			return err
		}
		if missing > 0 {
			return domainErrors.ErrHolderDataMissing
		}

		if order.InvoiceRequested {
			if _, err := r.Invoices().GetByOrder(ctx, order.ID); err != nil {
				if errors.Is(err, domainErrors.ErrNotFound) {
					return domainErrors.ErrInvoiceDataMissing
				}
				return err
			}
		}

		until := now.Add(u.ttl)
		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusAwaitingPayment); err != nil {
			return err
		}
		if err := r.Orders().ExtendReservation(ctx, order.ID, until); err != nil {
			return err
		}

		order.Status = model.OrderStatusAwaitingPayment
		order.ReservedUntil = laterOf(order.ReservedUntil, until)
		checked = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checked, nil
}

// Reopen moves an AWAITING_PAYMENT order back to PENDING so the user can
// edit the cart again. It is refused while a payment is in flight or once
// the reservation has lapsed. Holder and invoice edits survive the trip.
func (u *CartUseCase) Reopen(ctx context.Context, userID int64) (*model.Order, error) {
	var reopened *model.Order
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetAwaitingPaymentForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if order.Expired(u.now()) {
			return domainErrors.ErrReservationExpired
		}

		active, err := r.Payments().GetActiveByOrder(ctx, order.ID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("check active payment: %w", err)
		}
		if active != nil {
			return domainErrors.ErrActivePaymentExists
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
			return err
		}
		order.Status = model.OrderStatusPending
		reopened = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reopened, nil
}
