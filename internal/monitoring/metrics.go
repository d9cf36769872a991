package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ticketline/ticketline/internal/domain/model"
)

var (
	reservationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_reservation_attempts_total",
			Help: "Ticket reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	paymentsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_payments_finalized_total",
			Help: "Finalized payment attempts by outcome",
		},
		[]string{"outcome"},
	)

	ordersReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_orders_reaped_total",
			Help: "Expired orders cancelled by the reaper",
		},
	)

	inventoryReleased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_inventory_released_total",
			Help: "Inventory units returned by the reaper",
		},
		[]string{"kind"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// TrackReservation records one reservation attempt outcome.
func TrackReservation(outcome string) {
	reservationAttempts.WithLabelValues(outcome).Inc()
}

// TrackPaymentFinalized records one finalized payment outcome.
func TrackPaymentFinalized(outcome string) {
	paymentsFinalized.WithLabelValues(outcome).Inc()
}

// TrackCleanup records one reaper sweep result.
func TrackCleanup(stats model.CleanupStats) {
	ordersReaped.Add(float64(stats.OrdersCancelled))
	inventoryReleased.WithLabelValues("ticket").Add(float64(stats.TicketsReleased))
	inventoryReleased.WithLabelValues("ga_unit").Add(float64(stats.GAUnitsReleased))
}

// HTTPMetrics is gin middleware observing request latency per route.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
