package opensky

import (
	"context"

	"github.com/kxdev/opensky-mcp/pkg/logger"
)

// Fetcher is the outbound side of the service: one call per operation,
// replaceable in tests so every operation is checkable without network
// access.
type Fetcher interface {
	States(ctx context.Context, req *Request) ([]Aircraft, error)
	Flights(ctx context.Context, req *Request) ([]Flight, error)
}

// Service exposes the five flight-data operations. It holds no mutable
// state: every call validates its arguments, issues at most one fetch,
// and transforms the result.
type Service struct {
	fetcher      Fetcher
	defaultLimit int
	maxLimit     int
	logger       *logger.Logger
}

// NewService creates a new flight-data service
func NewService(fetcher Fetcher, defaultLimit, maxLimit int, log *logger.Logger) *Service {
	return &Service{
		fetcher:      fetcher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       log.Named("opensky-svc"),
	}
}

// DefaultLimit returns the limit applied when a caller does not ask for one.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// MaxLimit returns the hard cap on returned aircraft.
func (s *Service) MaxLimit() int { return s.maxLimit }

// AircraftInRegion returns all aircraft inside the bounding box.
func (s *Service) AircraftInRegion(ctx context.Context, latMin, latMax, lonMin, lonMax float64) ([]Aircraft, error) {
	req, err := RegionQuery(latMin, latMax, lonMin, lonMax)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fetcher.States(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Region query complete",
		logger.Float64("lat_min", latMin),
		logger.Float64("lat_max", latMax),
		logger.Float64("lon_min", lonMin),
		logger.Float64("lon_max", lonMax),
		logger.Int("aircraft_count", len(aircraft)),
	)
	return aircraft, nil
}

// AircraftByCallsign returns the aircraft currently broadcasting the
// given callsign. The upstream API has no callsign filter, so the full
// state list is fetched and filtered locally. No match is an empty
// slice, not an error.
func (s *Service) AircraftByCallsign(ctx context.Context, callsign string) ([]Aircraft, error) {
	cs, err := NormalizeCallsign(callsign)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fetcher.States(ctx, AllStatesQuery())
	if err != nil {
		return nil, err
	}

	matched := FilterByCallsign(aircraft, cs)
	s.logger.Debug("Callsign query complete",
		logger.String("callsign", cs),
		logger.Int("matched", len(matched)),
	)
	return matched, nil
}

// AllAircraft returns up to limit aircraft in upstream order. Limits
// above the hard cap are clamped, not rejected.
func (s *Service) AllAircraft(ctx context.Context, limit int) ([]Aircraft, error) {
	n := ClampLimit(limit, s.defaultLimit, s.maxLimit)

	aircraft, err := s.fetcher.States(ctx, AllStatesQuery())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("All-aircraft query complete",
		logger.Int("limit", n),
		logger.Int("total", len(aircraft)),
	)
	return Truncate(aircraft, n), nil
}

// Arrivals returns flights arriving at the airport in the time window.
func (s *Service) Arrivals(ctx context.Context, icao string, begin, end int64) ([]Flight, error) {
	return s.flights(ctx, Arrivals, icao, begin, end)
}

// Departures returns flights departing the airport in the time window.
func (s *Service) Departures(ctx context.Context, icao string, begin, end int64) ([]Flight, error) {
	return s.flights(ctx, Departures, icao, begin, end)
}

func (s *Service) flights(ctx context.Context, dir FlightDirection, icao string, begin, end int64) ([]Flight, error) {
	req, err := FlightsQuery(dir, icao, begin, end)
	if err != nil {
		return nil, err
	}

	flights, err := s.fetcher.Flights(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Flights query complete",
		logger.String("direction", string(dir)),
		logger.String("airport", req.Params.Get("airport")),
		logger.Int("flight_count", len(flights)),
	)
	return flights, nil
}
