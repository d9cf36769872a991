package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

// CleanupUseCase reclaims expired reservations: it cancels the orders,
// drops their line items and hands claimed GA units back to the counters.
type CleanupUseCase struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewCleanupUseCase(uow repository.UnitOfWork, logger *slog.Logger) *CleanupUseCase {
	return &CleanupUseCase{uow: uow, logger: logger}
}

// CleanupExpired runs one sweep over expired PENDING and AWAITING_PAYMENT
// orders, up to limit orders per status. Each order is reaped in its own
// transaction; a failing order is logged and skipped, never voiding the
// rest of the sweep.
func (u *CleanupUseCase) CleanupExpired(ctx context.Context, limit int) (model.CleanupStats, error) {
	var total model.CleanupStats
	var firstErr error
	for _, status := range []model.OrderStatus{model.OrderStatusPending, model.OrderStatusAwaitingPayment} {
		stats, err := u.sweep(ctx, status, limit)
		total.Add(stats)
		if err != nil {
			u.logger.Error("cleanup sweep failed",
				slog.String("status", string(status)),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return total, firstErr
}

func (u *CleanupUseCase) sweep(ctx context.Context, status model.OrderStatus, limit int) (model.CleanupStats, error) {
	// The first transaction only picks candidates; the claim lock is gone
	// once it commits, so each order is relocked before it is reaped.
	var candidates []model.Order
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		var err error
		candidates, err = r.Orders().ClaimExpired(ctx, status, limit)
		return err
	})
	if err != nil {
		return model.CleanupStats{}, err
	}

	var stats model.CleanupStats
	for _, candidate := range candidates {
		reaped, err := u.reapOrder(ctx, candidate.ID, status)
		if err != nil {
			u.logger.Error("skipping expired order",
				slog.Int64("order_id", candidate.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.Add(reaped)
	}
	return stats, nil
}

// reapOrder cancels one expired order in its own transaction. The order is
// relocked and its expiry re-checked, so an order the user revived between
// the candidate scan and now is left untouched.
func (u *CleanupUseCase) reapOrder(ctx context.Context, orderID int64, status model.OrderStatus) (model.CleanupStats, error) {
	var stats model.CleanupStats
	err := u.uow.Execute(ctx, func(r repository.Repositories) error {
		order, err := r.Orders().ClaimExpiredByID(ctx, orderID, status)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil
			}
			return err
		}

		releases, err := r.Tickets().GAReleases(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, rel := range releases {
			if err := r.Sectors().ReleaseGA(ctx, rel.EventSectorID, rel.Count); err != nil {
				return err
			}
			stats.GAUnitsReleased += rel.Count
		}

		deleted, err := r.Tickets().DeleteByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		stats.TicketsReleased += deleted

		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusCancelled); err != nil {
			return err
		}
		stats.OrdersCancelled++
		return nil
	})
	if err != nil {
		return model.CleanupStats{}, err
	}
	return stats, nil
}
