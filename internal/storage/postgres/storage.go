package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketline/ticketline/internal/domain/repository"
)

// querier is the subset of pgx shared by pool and transaction. Repositories
// run against whichever the current unit of work provides.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxPool abstracts the connection pool so tests can substitute pgxmock.
type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage is the PostgreSQL unit-of-work factory backing the booking engine.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Execute runs fn inside one transaction; every repository handed to fn is
// bound to it. Commit on nil, rollback on error.
func (s *Storage) Execute(ctx context.Context, fn func(r repository.Repositories) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(&repoSet{q: tx})
	return err
}

// repoSet binds the repositories to one querier for the life of a unit of
// work.
type repoSet struct {
	q querier
}

func (r *repoSet) Events() repository.EventRepository     { return &eventRepository{q: r.q} }
func (r *repoSet) Catalog() repository.CatalogRepository  { return &catalogRepository{q: r.q} }
func (r *repoSet) Sectors() repository.SectorRepository   { return &sectorRepository{q: r.q} }
func (r *repoSet) Orders() repository.OrderRepository     { return &orderRepository{q: r.q} }
func (r *repoSet) Tickets() repository.TicketRepository   { return &ticketRepository{q: r.q} }
func (r *repoSet) Payments() repository.PaymentRepository { return &paymentRepository{q: r.q} }
func (r *repoSet) Invoices() repository.InvoiceRepository { return &invoiceRepository{q: r.q} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'PLANNED',
            sales_start TIMESTAMPTZ NOT NULL,
            sales_end TIMESTAMPTZ NOT NULL,
            max_tickets_per_user INT,
            holder_data_required BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS sectors (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            is_ga BOOLEAN NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS seats (
            id BIGSERIAL PRIMARY KEY,
            sector_id BIGINT NOT NULL REFERENCES sectors(id),
            label TEXT NOT NULL,
            UNIQUE (sector_id, label)
        )`,
		`CREATE TABLE IF NOT EXISTS event_sectors (
            id BIGSERIAL PRIMARY KEY,
            event_id BIGINT NOT NULL REFERENCES events(id),
            sector_id BIGINT NOT NULL REFERENCES sectors(id),
            tickets_left INT CHECK (tickets_left >= 0),
            UNIQUE (event_id, sector_id)
        )`,
		`CREATE TABLE IF NOT EXISTS event_ticket_types (
            id BIGSERIAL PRIMARY KEY,
            event_sector_id BIGINT NOT NULL REFERENCES event_sectors(id),
            ticket_type_name TEXT NOT NULL,
            price_net NUMERIC(10,2) NOT NULL CHECK (price_net >= 0),
            vat_rate NUMERIC(4,2) NOT NULL,
            UNIQUE (event_sector_id, ticket_type_name)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING',
            total_price NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (total_price >= 0),
            reserved_until TIMESTAMPTZ,
            invoice_requested BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_open_per_user
            ON orders(user_id) WHERE status IN ('PENDING', 'AWAITING_PAYMENT')`,
		`CREATE INDEX IF NOT EXISTS idx_orders_reserved_until ON orders(reserved_until)`,
		`CREATE TABLE IF NOT EXISTS ticket_instances (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            event_id BIGINT NOT NULL REFERENCES events(id),
            event_ticket_type_id BIGINT NOT NULL REFERENCES event_ticket_types(id),
            seat_id BIGINT REFERENCES seats(id),
            price_net_snapshot NUMERIC(10,2) NOT NULL,
            vat_rate_snapshot NUMERIC(4,2) NOT NULL,
            price_gross_snapshot NUMERIC(10,2) NOT NULL,
            ticket_type_name_snapshot TEXT NOT NULL,
            reserved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT uq_event_seat UNIQUE (event_id, seat_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_ticket_instances_order ON ticket_instances(order_id)`,
		`CREATE TABLE IF NOT EXISTS ticket_holders (
            id BIGSERIAL PRIMARY KEY,
            ticket_instance_id BIGINT NOT NULL UNIQUE REFERENCES ticket_instances(id) ON DELETE CASCADE,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            birth_date DATE NOT NULL,
            identification_number TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tickets (
            id BIGSERIAL PRIMARY KEY,
            ticket_instance_id BIGINT NOT NULL UNIQUE REFERENCES ticket_instances(id) ON DELETE CASCADE,
            code TEXT NOT NULL UNIQUE,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payment_methods (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            payment_method_id BIGINT NOT NULL REFERENCES payment_methods(id),
            amount NUMERIC(10,2) NOT NULL CHECK (amount >= 0),
            provider TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'PENDING',
            idempotency_key TEXT NOT NULL UNIQUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            paid_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id)`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id),
            invoice_number TEXT UNIQUE,
            invoice_type TEXT NOT NULL,
            full_name TEXT NOT NULL,
            company_name TEXT,
            tax_id TEXT,
            street TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            city TEXT NOT NULL,
            country_code TEXT NOT NULL,
            currency_code TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            issued_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS invoice_counters (
            fiscal_year INT PRIMARY KEY,
            counter INT NOT NULL CHECK (counter >= 1)
        )`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
