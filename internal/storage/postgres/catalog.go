package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
)

type eventRepository struct {
	q querier
}

type catalogRepository struct {
	q querier
}

type sectorRepository struct {
	q querier
}

func (r *eventRepository) GetOnSale(ctx context.Context, eventID int64) (*model.Event, error) {
	const query = `SELECT id, name, status, sales_start, sales_end, max_tickets_per_user, holder_data_required
                   FROM events WHERE id=$1 AND status='ON_SALE'`
	var e model.Event
	err := r.q.QueryRow(ctx, query, eventID).
		Scan(&e.ID, &e.Name, &e.Status, &e.SalesStart, &e.SalesEnd, &e.MaxTicketsPerUser, &e.HolderDataRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *catalogRepository) GetTicketTypeForEvent(ctx context.Context, eventTicketTypeID, eventID int64) (*model.EventTicketType, error) {
	const query = `SELECT ett.id, ett.event_sector_id, ett.ticket_type_name, ett.price_net, ett.vat_rate,
                          es.id, es.event_id, es.sector_id, s.is_ga, es.tickets_left
                   FROM event_ticket_types ett
                   JOIN event_sectors es ON es.id = ett.event_sector_id
                   JOIN sectors s ON s.id = es.sector_id
                   WHERE ett.id=$1 AND es.event_id=$2`
	var tt model.EventTicketType
	err := r.q.QueryRow(ctx, query, eventTicketTypeID, eventID).Scan(
		&tt.ID, &tt.EventSectorID, &tt.TicketTypeName, &tt.PriceNet, &tt.VatRate,
		&tt.Sector.ID, &tt.Sector.EventID, &tt.Sector.SectorID, &tt.Sector.IsGA, &tt.Sector.TicketsLeft,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &tt, nil
}

func (r *catalogRepository) GetSeat(ctx context.Context, seatID int64) (*model.Seat, error) {
	const query = `SELECT id, sector_id, label FROM seats WHERE id=$1`
	var s model.Seat
	err := r.q.QueryRow(ctx, query, seatID).Scan(&s.ID, &s.SectorID, &s.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ClaimGA is the single conditional decrement that keeps GA capacity from
// being oversold: the row never goes below zero and concurrent claimers
// serialize on the row without the caller holding a lock across reads.
func (r *sectorRepository) ClaimGA(ctx context.Context, eventSectorID int64) error {
	const query = `UPDATE event_sectors SET tickets_left = tickets_left - 1
                   WHERE id=$1 AND tickets_left > 0
                   RETURNING tickets_left`
	var left int
	err := r.q.QueryRow(ctx, query, eventSectorID).Scan(&left)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNoCapacity
		}
		return fmt.Errorf("claim ga capacity: %w", err)
	}
	return nil
}

func (r *sectorRepository) ReleaseGA(ctx context.Context, eventSectorID int64, count int) error {
	const query = `UPDATE event_sectors SET tickets_left = tickets_left + $2
                   WHERE id=$1 AND tickets_left IS NOT NULL`
	if _, err := r.q.Exec(ctx, query, eventSectorID, count); err != nil {
		return fmt.Errorf("release ga capacity: %w", err)
	}
	return nil
}
