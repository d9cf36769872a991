package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/monitoring"
)

// ExpiredReservationCleaner exposes the subset of application functionality
// required by the reaper.
type ExpiredReservationCleaner interface {
	CleanupExpiredReservations(ctx context.Context, limit int) (model.CleanupStats, error)
}

// Reaper periodically reclaims expired reservations: it cancels lapsed
// orders and returns their inventory to the pool.
type Reaper struct {
	cleaner   ExpiredReservationCleaner
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReaper constructs the background reservation reaper.
func NewReaper(cleaner ExpiredReservationCleaner, interval time.Duration, batchSize int, logger *slog.Logger) *Reaper {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reaper{
		cleaner:   cleaner,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches the background sweep loop.
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (r *Reaper) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reaper) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	stats, err := r.cleaner.CleanupExpiredReservations(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("reservation sweep failed", slog.String("error", err.Error()))
	}
	monitoring.TrackCleanup(stats)
	if stats.OrdersCancelled > 0 {
		r.logger.Info("expired reservations reclaimed",
			slog.Int("orders_cancelled", stats.OrdersCancelled),
			slog.Int("tickets_released", stats.TicketsReleased),
			slog.Int("ga_units_released", stats.GAUnitsReleased),
		)
	}
}
