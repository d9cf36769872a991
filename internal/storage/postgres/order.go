package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
)

type orderRepository struct {
	q querier
}

const orderColumns = `id, user_id, status, total_price, reserved_until, invoice_requested, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ReservedUntil, &o.InvoiceRequested, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// CreatePendingIfAbsent leans on the partial unique index over open orders:
// when the user already has an open order the insert silently does nothing.
func (r *orderRepository) CreatePendingIfAbsent(ctx context.Context, userID int64, reservedUntil time.Time) error {
	const query = `INSERT INTO orders (user_id, status, reserved_until)
                   VALUES ($1, 'PENDING', $2)
                   ON CONFLICT (user_id) WHERE status IN ('PENDING', 'AWAITING_PAYMENT') DO NOTHING`
	if _, err := r.q.Exec(ctx, query, userID, reservedUntil); err != nil {
		return fmt.Errorf("create pending order: %w", err)
	}
	return nil
}

func (r *orderRepository) getByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus, forUpdate bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND status=$2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return scanOrder(r.q.QueryRow(ctx, query, userID, status))
}

func (r *orderRepository) GetPending(ctx context.Context, userID int64) (*model.Order, error) {
	return r.getByUserAndStatus(ctx, userID, model.OrderStatusPending, false)
}

func (r *orderRepository) GetPendingForUpdate(ctx context.Context, userID int64) (*model.Order, error) {
	return r.getByUserAndStatus(ctx, userID, model.OrderStatusPending, true)
}

func (r *orderRepository) GetAwaitingPayment(ctx context.Context, userID int64) (*model.Order, error) {
	return r.getByUserAndStatus(ctx, userID, model.OrderStatusAwaitingPayment, false)
}

func (r *orderRepository) GetAwaitingPaymentForUpdate(ctx context.Context, userID int64) (*model.Order, error) {
	return r.getByUserAndStatus(ctx, userID, model.OrderStatusAwaitingPayment, true)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$2 WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, orderID, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *orderRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	const query = `UPDATE orders SET total_price=$2 WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, orderID, total); err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}

func (r *orderRepository) ExtendReservation(ctx context.Context, orderID int64, until time.Time) error {
	const query = `UPDATE orders
                   SET reserved_until = GREATEST(COALESCE(reserved_until, $2), $2)
                   WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, orderID, until); err != nil {
		return fmt.Errorf("extend reservation: %w", err)
	}
	return nil
}

func (r *orderRepository) SetInvoiceRequested(ctx context.Context, orderID int64, requested bool) error {
	const query = `UPDATE orders SET invoice_requested=$2 WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, orderID, requested); err != nil {
		return fmt.Errorf("set invoice requested: %w", err)
	}
	return nil
}

func (r *orderRepository) CountUserTicketsForEvent(ctx context.Context, userID, eventID int64) (int, error) {
	const query = `SELECT COUNT(ti.id)
                   FROM ticket_instances ti
                   JOIN orders o ON o.id = ti.order_id
                   WHERE o.user_id=$1 AND ti.event_id=$2
                     AND o.status IN ('PENDING', 'AWAITING_PAYMENT', 'COMPLETED')`
	var count int
	if err := r.q.QueryRow(ctx, query, userID, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user tickets: %w", err)
	}
	return count, nil
}

// ClaimExpired uses SKIP LOCKED so the reaper never blocks behind an
// in-flight user operation; a contested order is simply left for the next
// sweep. Expired AWAITING_PAYMENT orders with an active payment are not
// claimable at all.
func (r *orderRepository) ClaimExpired(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE status=$1 AND reserved_until < NOW()`
	if status == model.OrderStatusAwaitingPayment {
		query += ` AND NOT EXISTS (
                  SELECT 1 FROM payments p
                  WHERE p.order_id = orders.id AND p.status IN ('PENDING', 'REQUIRES_ACTION'))`
	}
	query += `
              ORDER BY reserved_until
              LIMIT $2
              FOR UPDATE SKIP LOCKED`

	rows, err := r.q.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("claim expired orders: %w", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ReservedUntil, &o.InvoiceRequested, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClaimExpiredByID relocks one candidate for reaping. The expiry and
// payment conditions are repeated so an order revived between the candidate
// scan and this call stays alive.
func (r *orderRepository) ClaimExpiredByID(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE id=$1 AND status=$2 AND reserved_until < NOW()`
	if status == model.OrderStatusAwaitingPayment {
		query += ` AND NOT EXISTS (
                  SELECT 1 FROM payments p
                  WHERE p.order_id = orders.id AND p.status IN ('PENDING', 'REQUIRES_ACTION'))`
	}
	query += ` FOR UPDATE SKIP LOCKED`
	return scanOrder(r.q.QueryRow(ctx, query, orderID, status))
}
