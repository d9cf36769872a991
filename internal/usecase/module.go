package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ticketline/ticketline/internal/config"
	"github.com/ticketline/ticketline/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(uow repository.UnitOfWork, cfg *config.Config) *BookingUseCase {
		return NewBookingUseCase(uow, cfg.ReservationTTL)
	},
	func(uow repository.UnitOfWork, cfg *config.Config) *CartUseCase {
		return NewCartUseCase(uow, cfg.ReservationTTL)
	},
	func(uow repository.UnitOfWork, cfg *config.Config) *PaymentUseCase {
		return NewPaymentUseCase(uow, cfg.PaymentProvider, cfg.InvoiceLocation())
	},
	func(uow repository.UnitOfWork, logger *slog.Logger) *CleanupUseCase {
		return NewCleanupUseCase(uow, logger)
	},
)
