package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus describes whether an event is sellable.
type EventStatus string

const (
	EventStatusPlanned   EventStatus = "PLANNED"
	EventStatusOnSale    EventStatus = "ON_SALE"
	EventStatusEnded     EventStatus = "ENDED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event carries the sales-window and per-user constraints the booking engine
// consumes. Event CRUD itself is owned elsewhere.
type Event struct {
	ID                 int64
	Name               string
	Status             EventStatus
	SalesStart         time.Time
	SalesEnd           time.Time
	MaxTicketsPerUser  *int
	HolderDataRequired bool
}

// EventSector links an event to a physical sector. For GA sectors
// TicketsLeft is the capacity counter; for seated sectors it is nil and
// scarcity is enforced by the seat uniqueness invariant.
type EventSector struct {
	ID          int64
	EventID     int64
	SectorID    int64
	IsGA        bool
	TicketsLeft *int
}

// EventTicketType prices one ticket type within one event sector.
type EventTicketType struct {
	ID             int64
	EventSectorID  int64
	TicketTypeName string
	PriceNet       decimal.Decimal
	VatRate        decimal.Decimal
	Sector         EventSector
}

// Seat is one physical seat inside a sector.
type Seat struct {
	ID       int64
	SectorID int64
	Label    string
}
