package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/monolog-ai/monolog/application/service"
	apimiddleware "github.com/monolog-ai/monolog/infrastructure/api/middleware"
	v1 "github.com/monolog-ai/monolog/infrastructure/api/v1"
)

// APIServer exposes the catalog and search services over HTTP.
type APIServer struct {
	catalog *service.CatalogService
	search  *service.SearchService
	server  *Server
	logger  *slog.Logger
}

// NewAPIServer creates an APIServer wired to the given services.
func NewAPIServer(catalog *service.CatalogService, search *service.SearchService, logger *slog.Logger) *APIServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIServer{
		catalog: catalog,
		search:  search,
		logger:  logger,
	}
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	productsRouter := v1.NewProductsRouter(a.catalog, a.logger)
	searchRouter := v1.NewSearchRouter(a.search, a.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))

		r.Mount("/products", productsRouter.Routes())
		r.Mount("/search", searchRouter.Routes())
	})

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)
}

// health reports liveness plus the current product count.
func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	count, err := a.catalog.Count(r.Context())
	if err != nil {
		apimiddleware.WriteError(w, r, apimiddleware.NewServerError(http.StatusServiceUnavailable, "store unavailable"), a.logger)
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"products": count,
	})
}

// ListenAndServe starts the HTTP server on the given address and blocks.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	a.mountRoutes(server.Router())

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the full route tree as an http.Handler. Used by tests.
func (a *APIServer) Handler() http.Handler {
	server := NewServer("", a.logger)
	a.mountRoutes(server.Router())
	return server.Router()
}
