package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ticketline/ticketline/internal/domain/errors"
	"github.com/ticketline/ticketline/internal/domain/model"
)

type invoiceRepository struct {
	q querier
}

const invoiceColumns = `id, order_id, invoice_number, invoice_type, full_name, company_name, tax_id,
       street, postal_code, city, country_code, currency_code, created_at, issued_at`

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.InvoiceType, &inv.FullName,
		&inv.CompanyName, &inv.TaxID, &inv.Street, &inv.PostalCode, &inv.City,
		&inv.CountryCode, &inv.CurrencyCode, &inv.CreatedAt, &inv.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Upsert(ctx context.Context, orderID int64, data model.InvoiceData) (*model.Invoice, error) {
	const query = `INSERT INTO invoices
                   (order_id, invoice_type, full_name, company_name, tax_id,
                    street, postal_code, city, country_code, currency_code)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   ON CONFLICT (order_id) DO UPDATE
                   SET invoice_type=EXCLUDED.invoice_type,
                       full_name=EXCLUDED.full_name,
                       company_name=EXCLUDED.company_name,
                       tax_id=EXCLUDED.tax_id,
                       street=EXCLUDED.street,
                       postal_code=EXCLUDED.postal_code,
                       city=EXCLUDED.city,
                       country_code=EXCLUDED.country_code,
                       currency_code=EXCLUDED.currency_code
                   RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.q.QueryRow(ctx, query,
		orderID, data.InvoiceType, data.FullName, data.CompanyName, data.TaxID,
		data.Street, data.PostalCode, data.City, data.CountryCode, data.CurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("upsert invoice: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id=$1`
	return scanInvoice(r.q.QueryRow(ctx, query, orderID))
}

// NextNumber is the per-fiscal-year sequence: one atomic insert-or-increment
// that can never hand out the same value twice.
func (r *invoiceRepository) NextNumber(ctx context.Context, fiscalYear int) (int, error) {
	const query = `INSERT INTO invoice_counters (fiscal_year, counter)
                   VALUES ($1, 1)
                   ON CONFLICT (fiscal_year) DO UPDATE
                   SET counter = invoice_counters.counter + 1
                   RETURNING counter`
	var n int
	if err := r.q.QueryRow(ctx, query, fiscalYear).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

func (r *invoiceRepository) MarkIssued(ctx context.Context, invoiceID int64, number string, issuedAt time.Time) error {
	const query = `UPDATE invoices SET invoice_number=$2, issued_at=$3
                   WHERE id=$1 AND invoice_number IS NULL`
	if _, err := r.q.Exec(ctx, query, invoiceID, number, issuedAt); err != nil {
		return fmt.Errorf("mark invoice issued: %w", err)
	}
	return nil
}
