package di

import (
	"go.uber.org/fx"

	"github.com/ticketline/ticketline/internal/app"
	"github.com/ticketline/ticketline/internal/config"
	"github.com/ticketline/ticketline/internal/identity"
	"github.com/ticketline/ticketline/internal/logger"
	"github.com/ticketline/ticketline/internal/server/http/handlers"
	"github.com/ticketline/ticketline/internal/server/http/router"
	"github.com/ticketline/ticketline/internal/storage/postgres"
	"github.com/ticketline/ticketline/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		identity.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.BookingFacade) handlers.Facade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
