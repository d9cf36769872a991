package repository

import (
	"context"
	"time"

	"github.com/ticketline/ticketline/internal/domain/model"
)

// InvoiceRepository owns invoices and the per-fiscal-year number counter.
type InvoiceRepository interface {
	Upsert(ctx context.Context, orderID int64, data model.InvoiceData) (*model.Invoice, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error)

	// NextNumber atomically inserts-or-increments the counter for the fiscal
	// year and returns the new value. Numbers are never reused; gaps are
	// acceptable, duplicates are not.
	NextNumber(ctx context.Context, fiscalYear int) (int, error)
	// MarkIssued assigns the formatted invoice number exactly once.
	MarkIssued(ctx context.Context, invoiceID int64, number string, issuedAt time.Time) error
}
