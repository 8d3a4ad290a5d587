package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kxdev/opensky-mcp/internal/opensky"
	"github.com/kxdev/opensky-mcp/pkg/logger"
)

// Router is the HTTP API router. The HTTP surface is optional and
// mirrors the MCP tool set one-to-one; it exists so the same operations
// can be exercised with plain curl.
type Router struct {
	handler     *Handler
	middleware  *Middleware
	corsOrigins []string
	logger      *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(svc *opensky.Service, corsOrigins []string, log *logger.Logger) *Router {
	return &Router{
		handler:     NewHandler(svc, log),
		middleware:  NewMiddleware(log),
		corsOrigins: corsOrigins,
		logger:      log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.corsOrigins))

	router.Route("/api/v1", func(router chi.Router) {
		// Aircraft routes
		router.Get("/aircraft", r.handler.GetAllAircraft)
		router.Get("/aircraft/region", r.handler.GetAircraftInRegion)
		router.Get("/aircraft/callsign/{callsign}", r.handler.GetAircraftByCallsign)

		// Flight routes
		router.Get("/airports/{icao}/arrivals", r.handler.GetArrivals)
		router.Get("/airports/{icao}/departures", r.handler.GetDepartures)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
