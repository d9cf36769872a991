package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketInstance is one line item of an order. For seated sectors the
// (event, seat) pair is globally unique; GA instances carry no seat.
// Price fields are snapshots taken at reservation time and never track
// later catalog changes.
type TicketInstance struct {
	ID                     int64
	OrderID                int64
	EventID                int64
	EventTicketTypeID      int64
	SeatID                 *int64
	PriceNetSnapshot       decimal.Decimal
	VatRateSnapshot        decimal.Decimal
	PriceGrossSnapshot     decimal.Decimal
	TicketTypeNameSnapshot string
	ReservedAt             time.Time
}

// Seated reports whether the instance binds a specific seat.
func (ti *TicketInstance) Seated() bool {
	return ti.SeatID != nil
}

// TicketHolder is the attendee data attached to one line item. Some events
// require it before checkout.
type TicketHolder struct {
	ID                   int64
	TicketInstanceID     int64
	FirstName            string
	LastName             string
	BirthDate            time.Time
	IdentificationNumber string
	CreatedAt            time.Time
}

// Ticket is the issued entry code for a paid line item.
type Ticket struct {
	ID               int64
	TicketInstanceID int64
	Code             string
	IssuedAt         time.Time
}

// GrossPrice computes the gross price for a net price and VAT multiplier,
// rounded half-up to the currency's minor unit.
func GrossPrice(net, vatRate decimal.Decimal) decimal.Decimal {
	return net.Mul(vatRate).Round(2)
}
