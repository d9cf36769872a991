package repository

import (
	"context"
	"time"

	"github.com/ticketline/ticketline/internal/domain/model"
)

// SectorRelease pairs an event sector with the number of GA units an order
// holds in it.
type SectorRelease struct {
	EventSectorID int64
	Count         int
}

// TicketRepository owns line items, holder data and issued ticket codes.
type TicketRepository interface {
	// Insert adds a line item. For seated instances the seat uniqueness
	// invariant makes concurrent claims race; the loser gets ErrSeatTaken.
	Insert(ctx context.Context, instance *model.TicketInstance) (*model.TicketInstance, error)
	GetByIDForOrder(ctx context.Context, instanceID, orderID int64) (*model.TicketInstance, error)
	Delete(ctx context.Context, instanceID int64) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.TicketInstance, error)
	CountByOrder(ctx context.Context, orderID int64) (int, error)
	// DeleteByOrder removes all line items of an order, returning how many
	// were deleted. Holder data and issued codes cascade.
	DeleteByOrder(ctx context.Context, orderID int64) (int, error)

	// GAReleases reports, per GA sector, how many units the order holds.
	GAReleases(ctx context.Context, orderID int64) ([]SectorRelease, error)

	// CountMissingHolders counts the order's line items whose event requires
	// holder data but that have none attached yet.
	CountMissingHolders(ctx context.Context, orderID int64) (int, error)
	UpsertHolder(ctx context.Context, holder *model.TicketHolder) (*model.TicketHolder, error)

	// ListUnissued returns line item ids that have no ticket code yet.
	ListUnissued(ctx context.Context, orderID int64) ([]int64, error)
	IssueTicket(ctx context.Context, instanceID int64, code string, issuedAt time.Time) error
}
