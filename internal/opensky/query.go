package opensky

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Upstream endpoint paths
const (
	pathStatesAll  = "/states/all"
	pathArrivals   = "/flights/arrival"
	pathDepartures = "/flights/departure"
)

// FlightDirection selects the arrivals or departures endpoint.
type FlightDirection string

const (
	Arrivals   FlightDirection = "arrival"
	Departures FlightDirection = "departure"
)

// Request describes a single outbound call against the OpenSky API.
type Request struct {
	Path   string
	Params url.Values
}

// RegionQuery builds a bounding-box request against the all-states
// endpoint. Bounds are validated for range and ordering before any
// network activity.
func RegionQuery(latMin, latMax, lonMin, lonMax float64) (*Request, error) {
	if latMin < -90 || latMax > 90 {
		return nil, NewInvalidArgument("latitude must be in [-90, 90], got %g to %g", latMin, latMax)
	}
	if lonMin < -180 || lonMax > 180 {
		return nil, NewInvalidArgument("longitude must be in [-180, 180], got %g to %g", lonMin, lonMax)
	}
	if latMin > latMax {
		return nil, NewInvalidArgument("lat_min (%g) must not exceed lat_max (%g)", latMin, latMax)
	}
	if lonMin > lonMax {
		return nil, NewInvalidArgument("lon_min (%g) must not exceed lon_max (%g)", lonMin, lonMax)
	}

	params := url.Values{}
	params.Set("lamin", formatCoord(latMin))
	params.Set("lamax", formatCoord(latMax))
	params.Set("lomin", formatCoord(lonMin))
	params.Set("lomax", formatCoord(lonMax))

	return &Request{Path: pathStatesAll, Params: params}, nil
}

// AllStatesQuery builds an unfiltered all-states request. The OpenSky
// API has no server-side callsign filter and no result limit, so both
// the callsign and the all-aircraft operations start from this request.
func AllStatesQuery() *Request {
	return &Request{Path: pathStatesAll, Params: url.Values{}}
}

// FlightsQuery builds an arrivals or departures request for an airport
// and time window.
func FlightsQuery(dir FlightDirection, icao string, begin, end int64) (*Request, error) {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	if len(icao) != 4 || !isAlpha(icao) {
		return nil, NewInvalidArgument("airport ICAO code must be 4 letters, got %q", icao)
	}
	if begin >= end {
		return nil, NewInvalidArgument("begin (%d) must be before end (%d)", begin, end)
	}
	if end-begin > int64(MaxFlightWindow/time.Second) {
		return nil, NewInvalidArgument("time window must not exceed %s, got %s",
			MaxFlightWindow, time.Duration(end-begin)*time.Second)
	}

	path := pathArrivals
	if dir == Departures {
		path = pathDepartures
	}

	params := url.Values{}
	params.Set("airport", icao)
	params.Set("begin", strconv.FormatInt(begin, 10))
	params.Set("end", strconv.FormatInt(end, 10))

	return &Request{Path: path, Params: params}, nil
}

// NormalizeCallsign validates and canonicalizes a requested callsign.
func NormalizeCallsign(callsign string) (string, error) {
	cs := strings.ToUpper(strings.TrimSpace(callsign))
	if cs == "" {
		return "", NewInvalidArgument("callsign must not be empty")
	}
	if len(cs) > 8 {
		return "", NewInvalidArgument("callsign must be at most 8 characters, got %q", cs)
	}
	return cs, nil
}

// ClampLimit applies the default and the hard cap to a requested result
// limit. Requests above the cap are clamped, not rejected; zero or
// negative requests fall back to the default.
func ClampLimit(requested, def, cap int) int {
	if requested <= 0 {
		return def
	}
	if requested > cap {
		return cap
	}
	return requested
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
