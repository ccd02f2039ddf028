package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phuslu/log"

	"github.com/ndewijer/Stock-AI-Report/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Stock-AI-Report/internal/api/middleware"
	"github.com/ndewijer/Stock-AI-Report/internal/config"
	"github.com/ndewijer/Stock-AI-Report/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	stockDataService *service.StockDataService,
	reportService *service.ReportService,
	cfg *config.Config,
	logger *log.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(custommiddleware.Recoverer(logger))

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	preflight := custommiddleware.PreflightHandler(cfg.CORS.AllowedOrigins)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Sub-routers only inherit these handlers when mounted directly on root.
		r.NotFound(handlers.NotFound)
		r.MethodNotAllowed(handlers.MethodNotAllowed)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MethodNotAllowed)

			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Data proxy
		stockDataHandler := handlers.NewStockDataHandler(stockDataService)
		r.Get("/stock-data", stockDataHandler.PriceHistory)
		r.Options("/stock-data", preflight)

		// Report proxy
		reportHandler := handlers.NewReportHandler(reportService)
		r.Post("/report", reportHandler.GenerateReport)
		r.Options("/report", preflight)
	})

	return r
}
