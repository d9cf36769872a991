package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ticketline/ticketline/internal/domain/model"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

// stubUnitOfWork runs the unit of work against one fixed repository set.
// Rollback semantics are not simulated; tests assert on the calls made.
type stubUnitOfWork struct {
	repos *stubRepos
}

func (s *stubUnitOfWork) Execute(ctx context.Context, fn func(repository.Repositories) error) error {
	return fn(s.repos)
}

type stubRepos struct {
	events   stubEventRepository
	catalog  stubCatalogRepository
	sectors  stubSectorRepository
	orders   stubOrderRepository
	tickets  stubTicketRepository
	payments stubPaymentRepository
	invoices stubInvoiceRepository
}

func (s *stubRepos) Events() repository.EventRepository     { return &s.events }
func (s *stubRepos) Catalog() repository.CatalogRepository  { return &s.catalog }
func (s *stubRepos) Sectors() repository.SectorRepository   { return &s.sectors }
func (s *stubRepos) Orders() repository.OrderRepository     { return &s.orders }
func (s *stubRepos) Tickets() repository.TicketRepository   { return &s.tickets }
func (s *stubRepos) Payments() repository.PaymentRepository { return &s.payments }
func (s *stubRepos) Invoices() repository.InvoiceRepository { return &s.invoices }

type stubEventRepository struct {
	getOnSaleFn func(context.Context, int64) (*model.Event, error)
}

func (s *stubEventRepository) GetOnSale(ctx context.Context, eventID int64) (*model.Event, error) {
	if s.getOnSaleFn == nil {
		panic("GetOnSale not implemented")
	}
	return s.getOnSaleFn(ctx, eventID)
}

type stubCatalogRepository struct {
	getTicketTypeFn func(context.Context, int64, int64) (*model.EventTicketType, error)
	getSeatFn       func(context.Context, int64) (*model.Seat, error)
}

func (s *stubCatalogRepository) GetTicketTypeForEvent(ctx context.Context, ettID, eventID int64) (*model.EventTicketType, error) {
	if s.getTicketTypeFn == nil {
		panic("GetTicketTypeForEvent not implemented")
	}
	return s.getTicketTypeFn(ctx, ettID, eventID)
}

func (s *stubCatalogRepository) GetSeat(ctx context.Context, seatID int64) (*model.Seat, error) {
	if s.getSeatFn == nil {
		panic("GetSeat not implemented")
	}
	return s.getSeatFn(ctx, seatID)
}

type stubSectorRepository struct {
	claimGAFn   func(context.Context, int64) error
	releaseGAFn func(context.Context, int64, int) error
}

func (s *stubSectorRepository) ClaimGA(ctx context.Context, eventSectorID int64) error {
	if s.claimGAFn == nil {
		panic("ClaimGA not implemented")
	}
	return s.claimGAFn(ctx, eventSectorID)
}

func (s *stubSectorRepository) ReleaseGA(ctx context.Context, eventSectorID int64, count int) error {
	if s.releaseGAFn == nil {
		panic("ReleaseGA not implemented")
	}
	return s.releaseGAFn(ctx, eventSectorID, count)
}

type stubOrderRepository struct {
	createPendingFn        func(context.Context, int64, time.Time) error
	getPendingFn           func(context.Context, int64) (*model.Order, error)
	getPendingForUpdateFn  func(context.Context, int64) (*model.Order, error)
	getAwaitingFn          func(context.Context, int64) (*model.Order, error)
	getAwaitingForUpdateFn func(context.Context, int64) (*model.Order, error)
	updateStatusFn         func(context.Context, int64, model.OrderStatus) error
	updateTotalFn          func(context.Context, int64, decimal.Decimal) error
	extendReservationFn    func(context.Context, int64, time.Time) error
	setInvoiceRequestedFn  func(context.Context, int64, bool) error
	countUserTicketsFn     func(context.Context, int64, int64) (int, error)
	claimExpiredFn         func(context.Context, model.OrderStatus, int) ([]model.Order, error)
	claimExpiredByIDFn     func(context.Context, int64, model.OrderStatus) (*model.Order, error)
}

func (s *stubOrderRepository) CreatePendingIfAbsent(ctx context.Context, userID int64, until time.Time) error {
	if s.createPendingFn == nil {
		panic("CreatePendingIfAbsent not implemented")
	}
	return s.createPendingFn(ctx, userID, until)
}

func (s *stubOrderRepository) GetPending(ctx context.Context, userID int64) (*model.Order, error) {
	if s.getPendingFn == nil {
		panic("GetPending not implemented")
	}
	return s.getPendingFn(ctx, userID)
}

func (s *stubOrderRepository) GetPendingForUpdate(ctx context.Context, userID int64) (*model.Order, error) {
	if s.getPendingForUpdateFn == nil {
		panic("GetPendingForUpdate not implemented")
	}
	return s.getPendingForUpdateFn(ctx, userID)
}

func (s *stubOrderRepository) GetAwaitingPayment(ctx context.Context, userID int64) (*model.Order, error) {
	if s.getAwaitingFn == nil {
		panic("GetAwaitingPayment not implemented")
	}
	return s.getAwaitingFn(ctx, userID)
}

func (s *stubOrderRepository) GetAwaitingPaymentForUpdate(ctx context.Context, userID int64) (*model.Order, error) {
	if s.getAwaitingForUpdateFn == nil {
		panic("GetAwaitingPaymentForUpdate not implemented")
	}
	return s.getAwaitingForUpdateFn(ctx, userID)
}

func (s *stubOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.updateStatusFn == nil {
		panic("UpdateStatus not implemented")
	}
	return s.updateStatusFn(ctx, orderID, status)
}

func (s *stubOrderRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	if s.updateTotalFn == nil {
		panic("UpdateTotal not implemented")
	}
	return s.updateTotalFn(ctx, orderID, total)
}

func (s *stubOrderRepository) ExtendReservation(ctx context.Context, orderID int64, until time.Time) error {
	if s.extendReservationFn == nil {
		panic("ExtendReservation not implemented")
	}
	return s.extendReservationFn(ctx, orderID, until)
}

func (s *stubOrderRepository) SetInvoiceRequested(ctx context.Context, orderID int64, requested bool) error {
	if s.setInvoiceRequestedFn == nil {
		panic("SetInvoiceRequested not implemented")
	}
	return s.setInvoiceRequestedFn(ctx, orderID, requested)
}

func (s *stubOrderRepository) CountUserTicketsForEvent(ctx context.Context, userID, eventID int64) (int, error) {
	if s.countUserTicketsFn == nil {
		panic("CountUserTicketsForEvent not implemented")
	}
	return s.countUserTicketsFn(ctx, userID, eventID)
}

func (s *stubOrderRepository) ClaimExpired(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.claimExpiredFn == nil {
		panic("ClaimExpired not implemented")
	}
	return s.claimExpiredFn(ctx, status, limit)
}

func (s *stubOrderRepository) ClaimExpiredByID(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.claimExpiredByIDFn == nil {
		panic("ClaimExpiredByID not implemented")
	}
	return s.claimExpiredByIDFn(ctx, orderID, status)
}

type stubTicketRepository struct {
	insertFn              func(context.Context, *model.TicketInstance) (*model.TicketInstance, error)
	getByIDForOrderFn     func(context.Context, int64, int64) (*model.TicketInstance, error)
	deleteFn              func(context.Context, int64) error
	listByOrderFn         func(context.Context, int64) ([]model.TicketInstance, error)
	countByOrderFn        func(context.Context, int64) (int, error)
	deleteByOrderFn       func(context.Context, int64) (int, error)
	gaReleasesFn          func(context.Context, int64) ([]repository.SectorRelease, error)
	countMissingHoldersFn func(context.Context, int64) (int, error)
	upsertHolderFn        func(context.Context, *model.TicketHolder) (*model.TicketHolder, error)
	listUnissuedFn        func(context.Context, int64) ([]int64, error)
	issueTicketFn         func(context.Context, int64, string, time.Time) error
}

func (s *stubTicketRepository) Insert(ctx context.Context, instance *model.TicketInstance) (*model.TicketInstance, error) {
	if s.insertFn == nil {
		panic("Insert not implemented")
	}
	return s.insertFn(ctx, instance)
}

func (s *stubTicketRepository) GetByIDForOrder(ctx context.Context, instanceID, orderID int64) (*model.TicketInstance, error) {
	if s.getByIDForOrderFn == nil {
		panic("GetByIDForOrder not implemented")
	}
	return s.getByIDForOrderFn(ctx, instanceID, orderID)
}

func (s *stubTicketRepository) Delete(ctx context.Context, instanceID int64) error {
	if s.deleteFn == nil {
		panic("Delete not implemented")
	}
	return s.deleteFn(ctx, instanceID)
}

func (s *stubTicketRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.TicketInstance, error) {
	if s.listByOrderFn == nil {
		panic("ListByOrder not implemented")
	}
	return s.listByOrderFn(ctx, orderID)
}

func (s *stubTicketRepository) CountByOrder(ctx context.Context, orderID int64) (int, error) {
	if s.countByOrderFn == nil {
		panic("CountByOrder not implemented")
	}
	return s.countByOrderFn(ctx, orderID)
}

func (s *stubTicketRepository) DeleteByOrder(ctx context.Context, orderID int64) (int, error) {
	if s.deleteByOrderFn == nil {
		panic("DeleteByOrder not implemented")
	}
	return s.deleteByOrderFn(ctx, orderID)
}

func (s *stubTicketRepository) GAReleases(ctx context.Context, orderID int64) ([]repository.SectorRelease, error) {
	if s.gaReleasesFn == nil {
		panic("GAReleases not implemented")
	}
	return s.gaReleasesFn(ctx, orderID)
}

func (s *stubTicketRepository) CountMissingHolders(ctx context.Context, orderID int64) (int, error) {
	if s.countMissingHoldersFn == nil {
		panic("CountMissingHolders not implemented")
	}
	return s.countMissingHoldersFn(ctx, orderID)
}

func (s *stubTicketRepository) UpsertHolder(ctx context.Context, holder *model.TicketHolder) (*model.TicketHolder, error) {
	if s.upsertHolderFn == nil {
		panic("UpsertHolder not implemented")
	}
	return s.upsertHolderFn(ctx, holder)
}

func (s *stubTicketRepository) ListUnissued(ctx context.Context, orderID int64) ([]int64, error) {
	if s.listUnissuedFn == nil {
		panic("ListUnissued not implemented")
	}
	return s.listUnissuedFn(ctx, orderID)
}

func (s *stubTicketRepository) IssueTicket(ctx context.Context, instanceID int64, code string, issuedAt time.Time) error {
	if s.issueTicketFn == nil {
		panic("IssueTicket not implemented")
	}
	return s.issueTicketFn(ctx, instanceID, code, issuedAt)
}

type stubPaymentRepository struct {
	getMethodFn         func(context.Context, int64) (*model.PaymentMethod, error)
	listActiveMethodsFn func(context.Context) ([]model.PaymentMethod, error)
	getByKeyFn          func(context.Context, string) (*model.Payment, error)
	getActiveByOrderFn  func(context.Context, int64) (*model.Payment, error)
	createFn            func(context.Context, *model.Payment) (*model.Payment, error)
	getByIDForUserFn    func(context.Context, int64, int64) (*model.Payment, error)
	getForUpdateFn      func(context.Context, int64, int64) (*model.Payment, *model.Order, error)
	markCompletedFn     func(context.Context, int64, time.Time) error
	markFailedFn        func(context.Context, int64) error
}

func (s *stubPaymentRepository) GetMethod(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	if s.getMethodFn == nil {
		panic("GetMethod not implemented")
	}
	return s.getMethodFn(ctx, id)
}

func (s *stubPaymentRepository) ListActiveMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	if s.listActiveMethodsFn == nil {
		panic("ListActiveMethods not implemented")
	}
	return s.listActiveMethodsFn(ctx)
}

func (s *stubPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*model.Payment, error) {
	if s.getByKeyFn == nil {
		panic("GetByIdempotencyKey not implemented")
	}
	return s.getByKeyFn(ctx, key)
}

func (s *stubPaymentRepository) GetActiveByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.getActiveByOrderFn == nil {
		panic("GetActiveByOrder not implemented")
	}
	return s.getActiveByOrderFn(ctx, orderID)
}

func (s *stubPaymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.createFn == nil {
		panic("Create not implemented")
	}
	return s.createFn(ctx, payment)
}

func (s *stubPaymentRepository) GetByIDForUser(ctx context.Context, paymentID, userID int64) (*model.Payment, error) {
	if s.getByIDForUserFn == nil {
		panic("GetByIDForUser not implemented")
	}
	return s.getByIDForUserFn(ctx, paymentID, userID)
}

func (s *stubPaymentRepository) GetForUpdateByIDAndUser(ctx context.Context, paymentID, userID int64) (*model.Payment, *model.Order, error) {
	if s.getForUpdateFn == nil {
		panic("GetForUpdateByIDAndUser not implemented")
	}
	return s.getForUpdateFn(ctx, paymentID, userID)
}

func (s *stubPaymentRepository) MarkCompleted(ctx context.Context, paymentID int64, paidAt time.Time) error {
	if s.markCompletedFn == nil {
		panic("MarkCompleted not implemented")
	}
	return s.markCompletedFn(ctx, paymentID, paidAt)
}

func (s *stubPaymentRepository) MarkFailed(ctx context.Context, paymentID int64) error {
	if s.markFailedFn == nil {
		panic("MarkFailed not implemented")
	}
	return s.markFailedFn(ctx, paymentID)
}

type stubInvoiceRepository struct {
	upsertFn     func(context.Context, int64, model.InvoiceData) (*model.Invoice, error)
	getByOrderFn func(context.Context, int64) (*model.Invoice, error)
	nextNumberFn func(context.Context, int) (int, error)
	markIssuedFn func(context.Context, int64, string, time.Time) error
}

func (s *stubInvoiceRepository) Upsert(ctx context.Context, orderID int64, data model.InvoiceData) (*model.Invoice, error) {
	if s.upsertFn == nil {
		panic("Upsert not implemented")
	}
	return s.upsertFn(ctx, orderID, data)
}

func (s *stubInvoiceRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	if s.getByOrderFn == nil {
		panic("GetByOrder not implemented")
	}
	return s.getByOrderFn(ctx, orderID)
}

func (s *stubInvoiceRepository) NextNumber(ctx context.Context, fiscalYear int) (int, error) {
	if s.nextNumberFn == nil {
		panic("NextNumber not implemented")
	}
	return s.nextNumberFn(ctx, fiscalYear)
}

func (s *stubInvoiceRepository) MarkIssued(ctx context.Context, invoiceID int64, number string, issuedAt time.Time) error {
	if s.markIssuedFn == nil {
		panic("MarkIssued not implemented")
	}
	return s.markIssuedFn(ctx, invoiceID, number, issuedAt)
}
