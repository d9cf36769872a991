package repository

import "context"

// Repositories bundles access to the domain repositories. Implementations
// returned by a UnitOfWork are bound to that unit's transaction.
type Repositories interface {
	Events() EventRepository
	Catalog() CatalogRepository
	Sectors() SectorRepository
	Orders() OrderRepository
	Tickets() TicketRepository
	Payments() PaymentRepository
	Invoices() InvoiceRepository
}

// UnitOfWork runs fn inside one atomic transaction. Every repository call
// made through r shares that transaction; fn returning an error rolls the
// whole unit back so no partial allocation survives.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(r Repositories) error) error
}
