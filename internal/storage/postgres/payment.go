package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
)

type paymentRepository struct {
	q querier
}

const paymentColumns = `id, order_id, payment_method_id, amount, provider, status, idempotency_key, created_at, paid_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.PaymentMethodID, &p.Amount, &p.Provider,
		&p.Status, &p.IdempotencyKey, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetMethod(ctx context.Context, paymentMethodID int64) (*model.PaymentMethod, error) {
	const query = `SELECT id, name, is_active FROM payment_methods WHERE id=$1`
	var m model.PaymentMethod
	err := r.q.QueryRow(ctx, query, paymentMethodID).Scan(&m.ID, &m.Name, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *paymentRepository) ListActiveMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	const query = `SELECT id, name, is_active FROM payment_methods WHERE is_active ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var result []model.PaymentMethod
	for rows.Next() {
		var m model.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.IsActive); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE idempotency_key=$1`
	return scanPayment(r.q.QueryRow(ctx, query, key))
}

func (r *paymentRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments
                   WHERE order_id=$1 AND status IN ('PENDING', 'REQUIRES_ACTION')`
	return scanPayment(r.q.QueryRow(ctx, query, orderID))
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	const query = `INSERT INTO payments (order_id, payment_method_id, amount, provider, status, idempotency_key)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	created := *payment
	err := r.q.QueryRow(ctx, query,
		payment.OrderID, payment.PaymentMethodID, payment.Amount, payment.Provider, payment.Status, payment.IdempotencyKey,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &created, nil
}

func (r *paymentRepository) GetByIDForUser(ctx context.Context, paymentID, userID int64) (*model.Payment, error) {
	const query = `SELECT p.id, p.order_id, p.payment_method_id, p.amount, p.provider,
                          p.status, p.idempotency_key, p.created_at, p.paid_at
                   FROM payments p
                   JOIN orders o ON o.id = p.order_id
                   WHERE p.id=$1 AND o.user_id=$2`
	return scanPayment(r.q.QueryRow(ctx, query, paymentID, userID))
}

// GetForUpdateByIDAndUser locks payment and order in one statement so
// finalize serializes against concurrent finalizes and cart operations.
func (r *paymentRepository) GetForUpdateByIDAndUser(ctx context.Context, paymentID, userID int64) (*model.Payment, *model.Order, error) {
	const query = `SELECT p.id, p.order_id, p.payment_method_id, p.amount, p.provider,
                          p.status, p.idempotency_key, p.created_at, p.paid_at,
                          o.id, o.user_id, o.status, o.total_price, o.reserved_until, o.invoice_requested, o.created_at
                   FROM payments p
                   JOIN orders o ON o.id = p.order_id
                   WHERE p.id=$1 AND o.user_id=$2
                   FOR UPDATE`
	var p model.Payment
	var o model.Order
	err := r.q.QueryRow(ctx, query, paymentID, userID).Scan(
		&p.ID, &p.OrderID, &p.PaymentMethodID, &p.Amount, &p.Provider,
		&p.Status, &p.IdempotencyKey, &p.CreatedAt, &p.PaidAt,
		&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ReservedUntil, &o.InvoiceRequested, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domainErrors.ErrNotFound
		}
		return nil, nil, err
	}
	return &p, &o, nil
}

func (r *paymentRepository) MarkCompleted(ctx context.Context, paymentID int64, paidAt time.Time) error {
	const query = `UPDATE payments SET status='COMPLETED', paid_at=$2 WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, paymentID, paidAt); err != nil {
		return fmt.Errorf("mark payment completed: %w", err)
	}
	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, paymentID int64) error {
	const query = `UPDATE payments SET status='FAILED' WHERE id=$1`
	if _, err := r.q.Exec(ctx, query, paymentID); err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return nil
}
