package opensky

import (
	"math"
	"time"
)

// Conversion factors for aviation units
const (
	FeetPerMeter    = 3.28084 // feet per meter
	KnotsPerMPS     = 1.94384 // knots per meter/second
	FtPerMinPerMPS  = 196.85  // feet/minute per meter/second
	stateVectorLen  = 17      // fields per OpenSky state vector
	CallsignUnknown = "unknown"
)

// MaxFlightWindow is the widest begin/end interval the OpenSky flights
// endpoints accept; wider windows are rejected upstream.
const MaxFlightWindow = 7 * 24 * time.Hour

// Aircraft is one tracked aircraft after transformation: named fields,
// human-readable units, and explicit nil for values the upstream did
// not report. A nil pointer means "unavailable", never zero.
type Aircraft struct {
	ICAO24            string   `json:"icao24"`
	Callsign          string   `json:"callsign"` // trimmed; "unknown" when absent
	OriginCountry     string   `json:"origin_country"`
	TimePosition      *int64   `json:"time_position"`
	LastContact       *int64   `json:"last_contact"`
	Longitude         *float64 `json:"longitude"`
	Latitude          *float64 `json:"latitude"`
	BaroAltitudeFt    *int     `json:"baro_altitude_ft"`
	GeoAltitudeFt     *int     `json:"geo_altitude_ft"`
	OnGround          bool     `json:"on_ground"`
	GroundSpeedKt     *float64 `json:"ground_speed_kt"`
	TrueTrackDeg      *float64 `json:"true_track_deg"`
	VerticalRateFtMin *float64 `json:"vertical_rate_ft_min"`
	Squawk            *string  `json:"squawk"`
	SPI               bool     `json:"spi"`
	PositionSource    *int     `json:"position_source"`
}

// HasCallsign reports whether the aircraft broadcast a callsign.
func (a *Aircraft) HasCallsign() bool {
	return a.Callsign != CallsignUnknown
}

// Flight is one arrival or departure record for an airport.
type Flight struct {
	ICAO24              string  `json:"icao24"`
	Callsign            string  `json:"callsign"` // trimmed; "unknown" when absent
	FirstSeen           int64   `json:"first_seen"`
	LastSeen            int64   `json:"last_seen"`
	EstDepartureAirport *string `json:"est_departure_airport"`
	EstArrivalAirport   *string `json:"est_arrival_airport"`
}

// MetersToFeet converts an altitude in meters to whole feet.
func MetersToFeet(m float64) int {
	return int(math.Round(m * FeetPerMeter))
}

// MPSToKnots converts a speed in m/s to knots, rounded to one decimal.
func MPSToKnots(mps float64) float64 {
	return math.Round(mps*KnotsPerMPS*10) / 10
}

// MPSToFtPerMin converts a vertical rate in m/s to feet per minute,
// rounded to whole feet.
func MPSToFtPerMin(mps float64) float64 {
	return math.Round(mps * FtPerMinPerMPS)
}
