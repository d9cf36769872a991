package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

type ticketRepository struct {
	q querier
}

const ticketInstanceColumns = `id, order_id, event_id, event_ticket_type_id, seat_id,
       price_net_snapshot, vat_rate_snapshot, price_gross_snapshot, ticket_type_name_snapshot, reserved_at`

func scanTicketInstance(row pgx.Row) (*model.TicketInstance, error) {
	var ti model.TicketInstance
	err := row.Scan(&ti.ID, &ti.OrderID, &ti.EventID, &ti.EventTicketTypeID, &ti.SeatID,
		&ti.PriceNetSnapshot, &ti.VatRateSnapshot, &ti.PriceGrossSnapshot, &ti.TicketTypeNameSnapshot, &ti.ReservedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &ti, nil
}

// Insert lets concurrent seat claims race to commit; the unique constraint
// on (event_id, seat_id) picks exactly one winner and the loser surfaces as
// ErrSeatTaken. GA instances carry a NULL seat and never collide.
func (r *ticketRepository) Insert(ctx context.Context, instance *model.TicketInstance) (*model.TicketInstance, error) {
	const query = `INSERT INTO ticket_instances
                   (order_id, event_id, event_ticket_type_id, seat_id,
                    price_net_snapshot, vat_rate_snapshot, price_gross_snapshot, ticket_type_name_snapshot)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, reserved_at`
	created := *instance
	err := r.q.QueryRow(ctx, query,
		instance.OrderID, instance.EventID, instance.EventTicketTypeID, instance.SeatID,
		instance.PriceNetSnapshot, instance.VatRateSnapshot, instance.PriceGrossSnapshot, instance.TicketTypeNameSnapshot,
	).Scan(&created.ID, &created.ReservedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrSeatTaken
		}
		return nil, fmt.Errorf("insert ticket instance: %w", err)
	}
	return &created, nil
}

func (r *ticketRepository) GetByIDForOrder(ctx context.Context, instanceID, orderID int64) (*model.TicketInstance, error) {
	const query = `SELECT ` + ticketInstanceColumns + ` FROM ticket_instances WHERE id=$1 AND order_id=$2`
	return scanTicketInstance(r.q.QueryRow(ctx, query, instanceID, orderID))
}

func (r *ticketRepository) Delete(ctx context.Context, instanceID int64) error {
	const query = `DELETE FROM ticket_instances WHERE id=$1`
	tag, err := r.q.Exec(ctx, query, instanceID)
	if err != nil {
		return fmt.Errorf("delete ticket instance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.TicketInstance, error) {
	const query = `SELECT ` + ticketInstanceColumns + ` FROM ticket_instances WHERE order_id=$1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list ticket instances: %w", err)
	}
	defer rows.Close()

	var result []model.TicketInstance
	for rows.Next() {
		var ti model.TicketInstance
		if err := rows.Scan(&ti.ID, &ti.OrderID, &ti.EventID, &ti.EventTicketTypeID, &ti.SeatID,
			&ti.PriceNetSnapshot, &ti.VatRateSnapshot, &ti.PriceGrossSnapshot, &ti.TicketTypeNameSnapshot, &ti.ReservedAt); err != nil {
			return nil, err
		}
		result = append(result, ti)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) CountByOrder(ctx context.Context, orderID int64) (int, error) {
	const query = `SELECT COUNT(id) FROM ticket_instances WHERE order_id=$1`
	var count int
	if err := r.q.QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ticket instances: %w", err)
	}
	return count, nil
}

func (r *ticketRepository) DeleteByOrder(ctx context.Context, orderID int64) (int, error) {
	const query = `DELETE FROM ticket_instances WHERE order_id=$1`
	tag, err := r.q.Exec(ctx, query, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete order ticket instances: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *ticketRepository) GAReleases(ctx context.Context, orderID int64) ([]repository.SectorRelease, error) {
	const query = `SELECT ett.event_sector_id, COUNT(ti.id)
                   FROM ticket_instances ti
                   JOIN event_ticket_types ett ON ett.id = ti.event_ticket_type_id
                   WHERE ti.order_id=$1 AND ti.seat_id IS NULL
                   GROUP BY ett.event_sector_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("compute ga releases: %w", err)
	}
	defer rows.Close()

	var result []repository.SectorRelease
	for rows.Next() {
		var rel repository.SectorRelease
		if err := rows.Scan(&rel.EventSectorID, &rel.Count); err != nil {
			return nil, err
		}
		result = append(result, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) CountMissingHolders(ctx context.Context, orderID int64) (int, error) {
	const query = `SELECT COUNT(ti.id)
                   FROM ticket_instances ti
                   JOIN events e ON e.id = ti.event_id
                   LEFT JOIN ticket_holders th ON th.ticket_instance_id = ti.id
                   WHERE ti.order_id=$1 AND e.holder_data_required AND th.id IS NULL`
	var count int
	if err := r.q.QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count missing holders: %w", err)
	}
	return count, nil
}

func (r *ticketRepository) UpsertHolder(ctx context.Context, holder *model.TicketHolder) (*model.TicketHolder, error) {
	const query = `INSERT INTO ticket_holders
                   (ticket_instance_id, first_name, last_name, birth_date, identification_number)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (ticket_instance_id) DO UPDATE
                   SET first_name=EXCLUDED.first_name,
                       last_name=EXCLUDED.last_name,
                       birth_date=EXCLUDED.birth_date,
                       identification_number=EXCLUDED.identification_number
                   RETURNING id, created_at`
	saved := *holder
	err := r.q.QueryRow(ctx, query,
		holder.TicketInstanceID, holder.FirstName, holder.LastName, holder.BirthDate, holder.IdentificationNumber,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert ticket holder: %w", err)
	}
	return &saved, nil
}

func (r *ticketRepository) ListUnissued(ctx context.Context, orderID int64) ([]int64, error) {
	const query = `SELECT ti.id
                   FROM ticket_instances ti
                   LEFT JOIN tickets t ON t.ticket_instance_id = ti.id
                   WHERE ti.order_id=$1 AND t.id IS NULL
                   ORDER BY ti.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list unissued instances: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ticketRepository) IssueTicket(ctx context.Context, instanceID int64, code string, issuedAt time.Time) error {
	const query = `INSERT INTO tickets (ticket_instance_id, code, issued_at) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, instanceID, code, issuedAt); err != nil {
		return fmt.Errorf("issue ticket: %w", err)
	}
	return nil
}
