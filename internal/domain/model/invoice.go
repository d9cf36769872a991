package model

import "time"

// InvoiceType distinguishes personal from company invoices.
type InvoiceType string

const (
	InvoiceTypePersonal InvoiceType = "PERSONAL"
	InvoiceTypeCompany  InvoiceType = "COMPANY"
)

// Invoice holds billing data supplied while the cart is open. InvoiceNumber
// stays nil until the order's payment succeeds; once assigned it is
// immutable.
type Invoice struct {
	ID            int64
	OrderID       int64
	InvoiceNumber *string
	InvoiceType   InvoiceType
	FullName      string
	CompanyName   *string
	TaxID         *string
	Street        string
	PostalCode    string
	City          string
	CountryCode   string
	CurrencyCode  string
	CreatedAt     time.Time
	IssuedAt      *time.Time
}

// InvoiceData is the caller-supplied part of an invoice, upserted into the
// pending order's cart.
type InvoiceData struct {
	InvoiceType  InvoiceType
	FullName     string
	CompanyName  *string
	TaxID        *string
	Street       string
	PostalCode   string
	City         string
	CountryCode  string
	CurrencyCode string
}
