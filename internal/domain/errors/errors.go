package errors

import "errors"

// Not-found class. Absence of an entity scoped to the calling user is always
// reported as not found, never as forbidden, so existence does not leak.
var (
	ErrNotFound = errors.New("not found")
)

// Invalid-input class.
var (
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be a version-4 UUID")
	ErrSeatNotAllowed        = errors.New("general admission sector does not take a seat")
	ErrSeatRequired          = errors.New("seat is required for this sector")
	ErrTicketTypeMismatch    = errors.New("ticket type does not match event")
	ErrSeatMismatch          = errors.New("seat does not match ticket type")
	ErrTicketLimitExceeded   = errors.New("ticket limit for this event exceeded")
	ErrHolderDataMissing     = errors.New("ticket holder data required")
	ErrInvoiceDataMissing    = errors.New("invoice data required")
	ErrSalesNotStarted       = errors.New("sales not started yet")
	ErrSalesEnded            = errors.New("sales ended")
	ErrEmptyOrderTotal       = errors.New("order total must be greater than zero")
	ErrCartEmpty             = errors.New("cart is empty")
)

// Conflict class. These abort the enclosing transaction so no partial
// allocation survives.
var (
	ErrSeatTaken             = errors.New("selected seat is not available")
	ErrNoCapacity            = errors.New("no tickets left")
	ErrReservationExpired    = errors.New("reservation expired")
	ErrActivePaymentExists   = errors.New("active payment already exists for this order")
	ErrIdempotencyKeyReused  = errors.New("idempotency key reused for different payload")
	ErrOrderNotAwaitingState = errors.New("order not awaiting payment")
	ErrPaymentInProgress     = errors.New("payment in progress, finish or abandon it first")
)

var invalidInput = []error{
	ErrInvalidIdempotencyKey,
	ErrSeatNotAllowed,
	ErrSeatRequired,
	ErrTicketTypeMismatch,
	ErrSeatMismatch,
	ErrTicketLimitExceeded,
	ErrHolderDataMissing,
	ErrInvoiceDataMissing,
	ErrSalesNotStarted,
	ErrSalesEnded,
	ErrEmptyOrderTotal,
	ErrCartEmpty,
}

var conflicts = []error{
	ErrSeatTaken,
	ErrNoCapacity,
	ErrReservationExpired,
	ErrActivePaymentExists,
	ErrIdempotencyKeyReused,
	ErrOrderNotAwaitingState,
	ErrPaymentInProgress,
}

// IsInvalidInput reports whether err belongs to the invalid-input class.
func IsInvalidInput(err error) bool {
	return matches(err, invalidInput)
}

// IsConflict reports whether err belongs to the conflict class.
func IsConflict(err error) bool {
	return matches(err, conflicts)
}

func matches(err error, class []error) bool {
	for _, sentinel := range class {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
