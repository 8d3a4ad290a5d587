package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kxdev/opensky-mcp/internal/opensky"
	"github.com/kxdev/opensky-mcp/pkg/logger"
)

// Handler contains the HTTP API handlers
type Handler struct {
	svc    *opensky.Service
	logger *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc *opensky.Service, log *logger.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: log.Named("api-handler"),
	}
}

// AircraftResponse is the envelope for aircraft list responses
type AircraftResponse struct {
	Timestamp time.Time          `json:"timestamp"`
	Count     int                `json:"count"`
	Aircraft  []opensky.Aircraft `json:"aircraft"`
}

// FlightsResponse is the envelope for arrival/departure list responses
type FlightsResponse struct {
	Timestamp time.Time        `json:"timestamp"`
	Count     int              `json:"count"`
	Flights   []opensky.Flight `json:"flights"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// GetAllAircraft handles GET /api/v1/aircraft
func (h *Handler) GetAllAircraft(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, opensky.NewInvalidArgument("limit must be an integer, got %q", raw))
			return
		}
		limit = n
	}

	aircraft, err := h.svc.AllAircraft(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAircraft(w, aircraft)
}

// GetAircraftInRegion handles GET /api/v1/aircraft/region
func (h *Handler) GetAircraftInRegion(w http.ResponseWriter, r *http.Request) {
	bounds := [4]float64{}
	for i, name := range []string{"lat_min", "lat_max", "lon_min", "lon_max"} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			h.writeError(w, opensky.NewInvalidArgument("missing required query parameter %s", name))
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, opensky.NewInvalidArgument("%s must be a number, got %q", name, raw))
			return
		}
		bounds[i] = v
	}

	aircraft, err := h.svc.AircraftInRegion(r.Context(), bounds[0], bounds[1], bounds[2], bounds[3])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAircraft(w, aircraft)
}

// GetAircraftByCallsign handles GET /api/v1/aircraft/callsign/{callsign}
func (h *Handler) GetAircraftByCallsign(w http.ResponseWriter, r *http.Request) {
	callsign := chi.URLParam(r, "callsign")

	aircraft, err := h.svc.AircraftByCallsign(r.Context(), callsign)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAircraft(w, aircraft)
}

// GetArrivals handles GET /api/v1/airports/{icao}/arrivals
func (h *Handler) GetArrivals(w http.ResponseWriter, r *http.Request) {
	h.flights(w, r, opensky.Arrivals)
}

// GetDepartures handles GET /api/v1/airports/{icao}/departures
func (h *Handler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	h.flights(w, r, opensky.Departures)
}

func (h *Handler) flights(w http.ResponseWriter, r *http.Request, dir opensky.FlightDirection) {
	icao := chi.URLParam(r, "icao")

	begin, err := timestampParam(r, "begin")
	if err != nil {
		h.writeError(w, err)
		return
	}
	end, err := timestampParam(r, "end")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var flights []opensky.Flight
	if dir == opensky.Arrivals {
		flights, err = h.svc.Arrivals(r.Context(), icao, begin, end)
	} else {
		flights, err = h.svc.Departures(r.Context(), icao, begin, end)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, FlightsResponse{
		Timestamp: time.Now().UTC(),
		Count:     len(flights),
		Flights:   flights,
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeAircraft(w http.ResponseWriter, aircraft []opensky.Aircraft) {
	h.writeJSON(w, http.StatusOK, AircraftResponse{
		Timestamp: time.Now().UTC(),
		Count:     len(aircraft),
		Aircraft:  aircraft,
	})
}

// writeError maps error kinds onto HTTP status codes. Upstream
// failures are the gateway's fault from the client's point of view,
// hence 502.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	kind := opensky.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case opensky.InvalidArgument:
		status = http.StatusBadRequest
	case opensky.NetworkError, opensky.DataFormatError:
		status = http.StatusBadGateway
	}

	h.logger.Warn("Request failed",
		logger.String("kind", string(kind)),
		logger.Int("status", status),
		logger.Error(err),
	)

	h.writeJSON(w, status, ErrorResponse{
		Kind:    string(kind),
		Message: err.Error(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func timestampParam(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, opensky.NewInvalidArgument("missing required query parameter %s", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, opensky.NewInvalidArgument("%s must be a Unix timestamp, got %q", name, raw)
	}
	return v, nil
}
