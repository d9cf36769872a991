package repository

import (
	"context"

	"github.com/ticketline/ticketline/internal/domain/model"
)

// EventRepository reads the event attributes the booking engine consumes.
// Event CRUD belongs to a different service.
type EventRepository interface {
	// GetOnSale returns the event only if its status is ON_SALE.
	GetOnSale(ctx context.Context, eventID int64) (*model.Event, error)
}

// CatalogRepository resolves priced ticket types and seats.
type CatalogRepository interface {
	// GetTicketTypeForEvent returns the ticket type only if its sector
	// belongs to the given event, with the sector embedded.
	GetTicketTypeForEvent(ctx context.Context, eventTicketTypeID, eventID int64) (*model.EventTicketType, error)
	GetSeat(ctx context.Context, seatID int64) (*model.Seat, error)
}

// SectorRepository is the GA side of the inventory allocator. Seat scarcity
// is enforced by TicketRepository.Insert via the seat uniqueness invariant.
type SectorRepository interface {
	// ClaimGA decrements tickets_left by one in a single conditional update
	// and returns ErrNoCapacity when the counter is already at zero.
	ClaimGA(ctx context.Context, eventSectorID int64) error
	// ReleaseGA increments tickets_left by count. Callers only ever release
	// what they previously claimed.
	ReleaseGA(ctx context.Context, eventSectorID int64, count int) error
}
