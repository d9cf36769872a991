package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

func newCleanupForTest(repos *stubRepos) *CleanupUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCleanupUseCase(&stubUnitOfWork{repos: repos}, logger)
}

// reclaimFromCandidates wires the per-order relock to hand back the claimed
// candidate unchanged.
func reclaimFromCandidates(repos *stubRepos) {
	repos.orders.claimExpiredByIDFn = func(_ context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
		return &model.Order{ID: orderID, Status: status}, nil
	}
}

func TestCleanupExpiredSweepsBothStatuses(t *testing.T) {
	repos := &stubRepos{}
	var claimed []model.OrderStatus
	repos.orders.claimExpiredFn = func(_ context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
		if limit != 50 {
			t.Fatalf("unexpected limit %d", limit)
		}
		claimed = append(claimed, status)
		if status == model.OrderStatusPending {
			return []model.Order{{ID: 1, Status: status}, {ID: 2, Status: status}}, nil
		}
		return []model.Order{{ID: 3, Status: status}}, nil
	}
	reclaimFromCandidates(repos)
	releases := map[int64][]repository.SectorRelease{
		1: {{EventSectorID: 30, Count: 2}},
		2: nil,
		3: {{EventSectorID: 31, Count: 1}},
	}
	repos.tickets.gaReleasesFn = func(_ context.Context, orderID int64) ([]repository.SectorRelease, error) {
		return releases[orderID], nil
	}
	returned := map[int64]int{}
	repos.sectors.releaseGAFn = func(_ context.Context, sectorID int64, count int) error {
		returned[sectorID] += count
		return nil
	}
	deleted := map[int64]int{1: 2, 2: 1, 3: 1}
	repos.tickets.deleteByOrderFn = func(_ context.Context, orderID int64) (int, error) {
		return deleted[orderID], nil
	}
	var cancelled []int64
	repos.orders.updateStatusFn = func(_ context.Context, orderID int64, status model.OrderStatus) error {
		if status != model.OrderStatusCancelled {
			t.Fatalf("expected CANCELLED, got %s", status)
		}
		cancelled = append(cancelled, orderID)
		return nil
	}

	uc := newCleanupForTest(repos)
	stats, err := uc.CleanupExpired(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claimed) != 2 || claimed[0] != model.OrderStatusPending || claimed[1] != model.OrderStatusAwaitingPayment {
		t.Fatalf("unexpected sweep order: %v", claimed)
	}
	if stats.OrdersCancelled != 3 {
		t.Fatalf("expected 3 cancelled orders, got %d", stats.OrdersCancelled)
	}
	if stats.TicketsReleased != 4 {
		t.Fatalf("expected 4 released tickets, got %d", stats.TicketsReleased)
	}
	if stats.GAUnitsReleased != 3 {
		t.Fatalf("expected 3 GA units released, got %d", stats.GAUnitsReleased)
	}
	if returned[30] != 2 || returned[31] != 1 {
		t.Fatalf("unexpected GA returns: %v", returned)
	}
	if len(cancelled) != 3 {
		t.Fatalf("unexpected cancellations: %v", cancelled)
	}
}

func TestCleanupExpiredNothingToDo(t *testing.T) {
	repos := &stubRepos{}
	repos.orders.claimExpiredFn = func(context.Context, model.OrderStatus, int) ([]model.Order, error) {
		return nil, nil
	}

	uc := newCleanupForTest(repos)
	stats, err := uc.CleanupExpired(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (model.CleanupStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestCleanupExpiredContinuesAfterSweepFailure(t *testing.T) {
	repos := &stubRepos{}
	boom := errors.New("claim failed")
	repos.orders.claimExpiredFn = func(_ context.Context, status model.OrderStatus, _ int) ([]model.Order, error) {
		if status == model.OrderStatusPending {
			return nil, boom
		}
		return []model.Order{{ID: 3, Status: status}}, nil
	}
	reclaimFromCandidates(repos)
	repos.tickets.gaReleasesFn = func(context.Context, int64) ([]repository.SectorRelease, error) {
		return nil, nil
	}
	repos.tickets.deleteByOrderFn = func(context.Context, int64) (int, error) { return 1, nil }
	repos.orders.updateStatusFn = func(context.Context, int64, model.OrderStatus) error { return nil }

	uc := newCleanupForTest(repos)
	stats, err := uc.CleanupExpired(context.Background(), 50)
	if !errors.Is(err, boom) {
		t.Fatalf("expected sweep error surfaced, got %v", err)
	}
	if stats.OrdersCancelled != 1 {
		t.Fatalf("expected second sweep to run, got %+v", stats)
	}
}

func TestCleanupExpiredSkipsFailingOrder(t *testing.T) {
	repos := &stubRepos{}
	repos.orders.claimExpiredFn = func(_ context.Context, status model.OrderStatus, _ int) ([]model.Order, error) {
		if status != model.OrderStatusPending {
			return nil, nil
		}
		return []model.Order{{ID: 1, Status: status}, {ID: 2, Status: status}, {ID: 3, Status: status}}, nil
	}
	reclaimFromCandidates(repos)
	repos.tickets.gaReleasesFn = func(context.Context, int64) ([]repository.SectorRelease, error) {
		return nil, nil
	}
	repos.tickets.deleteByOrderFn = func(_ context.Context, orderID int64) (int, error) {
		if orderID == 2 {
			return 0, errors.New("deadlock detected")
		}
		return 1, nil
	}
	var cancelled []int64
	repos.orders.updateStatusFn = func(_ context.Context, orderID int64, _ model.OrderStatus) error {
		cancelled = append(cancelled, orderID)
		return nil
	}

	uc := newCleanupForTest(repos)
	stats, err := uc.CleanupExpired(context.Background(), 50)
	if err != nil {
		t.Fatalf("one bad order must not fail the sweep, got %v", err)
	}
	if stats.OrdersCancelled != 2 || stats.TicketsReleased != 2 {
		t.Fatalf("expected orders 1 and 3 reaped, got %+v", stats)
	}
	if len(cancelled) != 2 || cancelled[0] != 1 || cancelled[1] != 3 {
		t.Fatalf("unexpected cancellations: %v", cancelled)
	}
}

func TestCleanupExpiredLeavesRevivedOrderAlone(t *testing.T) {
	repos := &stubRepos{}
	repos.orders.claimExpiredFn = func(_ context.Context, status model.OrderStatus, _ int) ([]model.Order, error) {
		if status != model.OrderStatusPending {
			return nil, nil
		}
		return []model.Order{{ID: 1, Status: status}}, nil
	}
	repos.orders.claimExpiredByIDFn = func(context.Context, int64, model.OrderStatus) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}
	repos.tickets.gaReleasesFn = func(context.Context, int64) ([]repository.SectorRelease, error) {
		t.Fatal("revived order must not be touched")
		return nil, nil
	}

	uc := newCleanupForTest(repos)
	stats, err := uc.CleanupExpired(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (model.CleanupStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
