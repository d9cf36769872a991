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

// ReservationResult is handed back to the booking API after a successful
// reservation.
type ReservationResult struct {
	Order          *model.Order
	TicketInstance *model.TicketInstance
}

// BookingUseCase turns reservation requests into durable inventory claims.
// Every call runs as one atomic unit of work: a seat conflict or GA
// exhaustion rolls the whole attempt back with no partial state.
type BookingUseCase struct {
	uow repository.UnitOfWork
	ttl time.Duration
	now func() time.Time
}

// NewBookingUseCase constructs BookingUseCase. ttl is the reservation
// window granted (and re-granted) on every successful claim.
func NewBookingUseCase(uow repository.UnitOfWork, ttl time.Duration) *BookingUseCase {
	return &BookingUseCase{uow: uow, ttl: ttl, now: time.Now}
}

// ReserveTicket claims one ticket of the given type for the user, lazily
// creating the cart. seatID must be present exactly when the sector is
// seated.
func (u *BookingUseCase) ReserveTicket(ctx context.Context, userID, eventID, eventTicketTypeID int64, seatID *int64) (*ReservationResult, error) {
	var result *ReservationResult
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		now := u.now()

		event, err := r.Events().GetOnSale(ctx, eventID)
		if err != nil {
			return fmt.Errorf("load event: %w", err)
		}
		if event.SalesStart.After(now) {
			return domainErrors.ErrSalesNotStarted
		}
		if event.SalesEnd.Before(now) {
			return domainErrors.ErrSalesEnded
		}

		ticketType, err := r.Catalog().GetTicketTypeForEvent(ctx, eventTicketTypeID, eventID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrTicketTypeMismatch
			}
			return fmt.Errorf("load ticket type: %w", err)
		}
		if ticketType.Sector.IsGA && seatID != nil {
			return domainErrors.ErrSeatNotAllowed
		}
		if !ticketType.Sector.IsGA && seatID == nil {
			return domainErrors.ErrSeatRequired
		}

		// A checkout in flight blocks new reservations until it finishes,
		// is reopened, or the reaper reclaims it.
		awaiting, err := r.Orders().GetAwaitingPayment(ctx, userID)
		if err == nil {
			if awaiting.Expired(now) {
				return domainErrors.ErrReservationExpired
			}
			return domainErrors.ErrPaymentInProgress
		}
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("check awaiting order: %w", err)
		}

		until := now.Add(u.ttl)
		if err := r.Orders().CreatePendingIfAbsent(ctx, userID, until); err != nil {
			return err
		}
		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock pending order: %w", err)
		}

		if event.MaxTicketsPerUser != nil {
			count, err := r.Orders().CountUserTicketsForEvent(ctx, userID, eventID)
			if err != nil {
				return err
			}
			if count+1 > *event.MaxTicketsPerUser {
				return domainErrors.ErrTicketLimitExceeded
			}
		}

		instance := &model.TicketInstance{
			OrderID:                order.ID,
			EventID:                eventID,
			EventTicketTypeID:      ticketType.ID,
			PriceNetSnapshot:       ticketType.PriceNet,
			VatRateSnapshot:        ticketType.VatRate,
			PriceGrossSnapshot:     model.GrossPrice(ticketType.PriceNet, ticketType.VatRate),
			TicketTypeNameSnapshot: ticketType.TicketTypeName,
		}

		if seatID != nil {
			seat, err := r.Catalog().GetSeat(ctx, *seatID)
			if err != nil {
				return fmt.Errorf("load seat: %w", err)
			}
			if seat.SectorID != ticketType.Sector.SectorID {
				return domainErrors.ErrSeatMismatch
			}
			instance.SeatID = seatID
		} else {
			if err := r.Sectors().ClaimGA(ctx, ticketType.Sector.ID); err != nil {
				return err
			}
		}

		created, err := r.Tickets().Insert(ctx, instance)
		if err != nil {
			return err
		}

		total := order.TotalPrice.Add(created.PriceGrossSnapshot)
		if err := r.Orders().UpdateTotal(ctx, order.ID, total); err != nil {
			return err
		}
		if err := r.Orders().ExtendReservation(ctx, order.ID, until); err != nil {
			return err
		}

		order.TotalPrice = total
		order.ReservedUntil = laterOf(order.ReservedUntil, until)
		result = &ReservationResult{Order: order, TicketInstance: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveTicketInstance drops one line item from the caller's pending order
// and symmetrically returns whatever inventory the reservation claimed.
func (u *BookingUseCase) RemoveTicketInstance(ctx context.Context, userID, instanceID int64) error {
	return u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().GetPendingForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		instance, err := r.Tickets().GetByIDForOrder(ctx, instanceID, order.ID)
		if err != nil {
			return err
		}

		if err := r.Tickets().Delete(ctx, instance.ID); err != nil {
			return err
		}

		// Deleting a seated row frees the seat through the uniqueness
		// invariant; GA claims have to be handed back to the counter.
		if !instance.Seated() {
			ticketType, err := r.Catalog().GetTicketTypeForEvent(ctx, instance.EventTicketTypeID, instance.EventID)
			if err != nil {
				return fmt.Errorf("resolve sector for release: %w", err)
			}
			if err := r.Sectors().ReleaseGA(ctx, ticketType.Sector.ID, 1); err != nil {
				return err
			}
		}

		total := order.TotalPrice.Sub(instance.PriceGrossSnapshot)
		return r.Orders().UpdateTotal(ctx, order.ID, total)
	})
}

func laterOf(current *time.Time, candidate time.Time) *time.Time {
	if current != nil && current.After(candidate) {
		return current
	}
	return &candidate
}
