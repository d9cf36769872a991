package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

// newTicketCode produces an entry code for an issued ticket. Hooked for
// deterministic tests.
var newTicketCode = func() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// StartPaymentResult carries the created (or replayed) payment and the
// redirect the customer must follow to finish it.
type StartPaymentResult struct {
	Payment     *model.Payment
	RedirectURL string
}

// PaymentUseCase drives payment attempts: starting them idempotently,
// finalizing them and settling the order on success.
type PaymentUseCase struct {
	uow      repository.UnitOfWork
	provider string
	invoiceL *time.Location
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase. provider names the payment
// provider recorded on every attempt; invoiceLocation picks the fiscal year
// for invoice numbering.
func NewPaymentUseCase(uow repository.UnitOfWork, provider string, invoiceLocation *time.Location) *PaymentUseCase {
	return &PaymentUseCase{uow: uow, provider: provider, invoiceL: invoiceLocation, now: time.Now}
}

// StartPayment begins paying the user's AWAITING_PAYMENT order. The
// idempotency key must be a UUIDv4; replaying the same key with the same
// order, method and amount returns the original attempt, replaying it with
// a different payload is refused. An in-flight payment for the order is
// handed back as-is when its payload matches the request.
func (u *PaymentUseCase) StartPayment(ctx context.Context, userID int64, paymentMethodID int64, idempotencyKey string) (*StartPaymentResult, error) {
	parsed, err := uuid.Parse(idempotencyKey)
	if err != nil || parsed.Version() != 4 {
		return nil, domainErrors.ErrInvalidIdempotencyKey
	}

	var result *StartPaymentResult
	err = u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetAwaitingPaymentForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if order.Expired(u.now()) {
			return domainErrors.ErrReservationExpired
		}
		if !order.TotalPrice.IsPositive() {
			return domainErrors.ErrEmptyOrderTotal
		}

		method, err := r.Payments().GetMethod(ctx, paymentMethodID)
		if err != nil {
			return err
		}
		if !method.IsActive {
			return domainErrors.ErrNotFound
		}

		existing, err := r.Payments().GetByIdempotencyKey(ctx, idempotencyKey)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("look up idempotency key: %w", err)
		}
		if existing != nil {
			if existing.OrderID != order.ID || existing.PaymentMethodID != method.ID || !existing.Amount.Equal(order.TotalPrice) {
				return domainErrors.ErrIdempotencyKeyReused
			}
			result = &StartPaymentResult{Payment: existing}
			if !existing.Status.Terminal() {
				result.RedirectURL = redirectURL(existing)
			}
			return nil
		}

		active, err := r.Payments().GetActiveByOrder(ctx, order.ID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("check active payment: %w", err)
		}
		if active != nil {
			if active.PaymentMethodID != method.ID || !active.Amount.Equal(order.TotalPrice) {
				return domainErrors.ErrActivePaymentExists
			}
			result = &StartPaymentResult{Payment: active, RedirectURL: redirectURL(active)}
			return nil
		}

		created, err := r.Payments().Create(ctx, &model.Payment{
			OrderID:         order.ID,
			PaymentMethodID: method.ID,
			Amount:          order.TotalPrice,
			Provider:        u.provider,
			Status:          model.PaymentStatusRequiresAction,
			IdempotencyKey:  idempotencyKey,
		})
		if err != nil {
			return err
		}

		result = &StartPaymentResult{Payment: created, RedirectURL: redirectURL(created)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizePayment records the provider's outcome. Finalizing an already
// terminal payment is a no-op returning its current state. On success the
// order completes: entry codes are issued and, when an invoice draft
// exists, it gets its number.
func (u *PaymentUseCase) FinalizePayment(ctx context.Context, userID, paymentID int64, succeeded bool) (*model.Payment, error) {
	var finalized *model.Payment
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		payment, order, err := r.Payments().GetForUpdateByIDAndUser(ctx, paymentID, userID)
		if err != nil {
			return err
		}
		if payment.Status.Terminal() {
			finalized = payment
			return nil
		}
		if order.Status != model.OrderStatusAwaitingPayment {
			return domainErrors.ErrOrderNotAwaitingState
		}

		if !succeeded {
			if err := r.Payments().MarkFailed(ctx, payment.ID); err != nil {
				return err
			}
			payment.Status = model.PaymentStatusFailed
			finalized = payment
			return nil
		}

		paidAt := u.now()
		if err := r.Payments().MarkCompleted(ctx, payment.ID, paidAt); err != nil {
			return err
		}
		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusCompleted); err != nil {
			return err
		}
		if err := u.issueTickets(ctx, r, order.ID, paidAt); err != nil {
			return err
		}
		if err := u.numberInvoice(ctx, r, order.ID, paidAt); err != nil {
			return err
		}

		payment.Status = model.PaymentStatusCompleted
		payment.PaidAt = &paidAt
		finalized = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finalized, nil
}

// GetPayment returns one of the user's payments.
func (u *PaymentUseCase) GetPayment(ctx context.Context, userID, paymentID int64) (*model.Payment, error) {
	var payment *model.Payment
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		var err error
		payment, err = r.Payments().GetByIDForUser(ctx, paymentID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListActivePaymentMethods returns the methods customers may pay with.
func (u *PaymentUseCase) ListActivePaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		var err error
		methods, err = r.Payments().ListActiveMethods(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return methods, nil
}

func (u *PaymentUseCase) issueTickets(ctx context.Context, r repository.Repositories, orderID int64, issuedAt time.Time) error {
	unissued, err := r.Tickets().ListUnissued(ctx, orderID)
	if err != nil {
		return err
	}
	for _, instanceID := range unissued {
		if err := r.Tickets().IssueTicket(ctx, instanceID, newTicketCode(), issuedAt); err != nil {
			return fmt.Errorf("issue ticket for line item %d: %w", instanceID, err)
		}
	}
	return nil
}

// numberInvoice assigns the fiscal-year sequence number to the order's
// invoice draft. Orders without a draft are left alone.
func (u *PaymentUseCase) numberInvoice(ctx context.Context, r repository.Repositories, orderID int64, paidAt time.Time) error {
	invoice, err := r.Invoices().GetByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load invoice: %w", err)
	}
	if invoice.InvoiceNumber != nil {
		return nil
	}

	fiscalYear := paidAt.In(u.invoiceL).Year()
	n, err := r.Invoices().NextNumber(ctx, fiscalYear)
	if err != nil {
		return err
	}
	number := fmt.Sprintf("%d-%08d", fiscalYear, n)
	return r.Invoices().MarkIssued(ctx, invoice.ID, number, paidAt)
}

func redirectURL(p *model.Payment) string {
	return fmt.Sprintf("/payments/%d/redirect?ik=%s", p.ID, p.IdempotencyKey)
}
