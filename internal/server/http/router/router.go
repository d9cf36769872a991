package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ticketline/ticketline/internal/identity"
	"github.com/ticketline/ticketline/internal/monitoring"
	"github.com/ticketline/ticketline/internal/server/http/handlers"
	"github.com/ticketline/ticketline/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, provider identity.Provider, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(monitoring.HTTPMetrics())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	bookingHandler := handlers.NewBookingHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	maintenanceHandler := handlers.NewMaintenanceHandler(facade)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(provider))

	api.POST("/booking/reserve", bookingHandler.Reserve)

	cart := api.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.DELETE("/items/:id", bookingHandler.RemoveItem)
	cart.PUT("/items/:id/holder", cartHandler.UpsertHolder)
	cart.PATCH("/invoice-request", cartHandler.SetInvoiceRequested)
	cart.PUT("/invoice", cartHandler.UpsertInvoice)
	cart.POST("/checkout", cartHandler.Checkout)
	cart.POST("/reopen", cartHandler.Reopen)
	cart.GET("/payment-methods", paymentHandler.Methods)
	cart.POST("/payments/start", paymentHandler.Start)
	cart.POST("/payments/:id/finalize", paymentHandler.Finalize)
	cart.GET("/payments/:id", paymentHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.POST("/maintenance/cleanup-expired", maintenanceHandler.CleanupExpired)

	return engine
}
