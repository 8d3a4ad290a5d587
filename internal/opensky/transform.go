package opensky

import (
	"encoding/json"
	"fmt"
	"strings"
)

// statesResponse is the raw shape of the all-states endpoint: one
// fixed-order positional array per tracked aircraft. Raw arrays never
// leave this file; everything downstream sees named fields.
type statesResponse struct {
	Time   int64               `json:"time"`
	States [][]json.RawMessage `json:"states"`
}

// flightEntry is the raw shape of one arrivals/departures record.
type flightEntry struct {
	ICAO24              string  `json:"icao24"`
	Callsign            *string `json:"callsign"`
	FirstSeen           int64   `json:"firstSeen"`
	LastSeen            int64   `json:"lastSeen"`
	EstDepartureAirport *string `json:"estDepartureAirport"`
	EstArrivalAirport   *string `json:"estArrivalAirport"`
}

// DecodeStates parses an all-states response body into transformed
// Aircraft records, preserving upstream order.
func DecodeStates(body []byte) ([]Aircraft, error) {
	var resp statesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewDataFormatError(err, "response is not a valid states payload")
	}

	aircraft := make([]Aircraft, 0, len(resp.States))
	for i, row := range resp.States {
		ac, err := transformState(row)
		if err != nil {
			return nil, NewDataFormatError(err, "state vector %d is malformed", i)
		}
		aircraft = append(aircraft, ac)
	}
	return aircraft, nil
}

// transformState maps one positional state-vector array onto named,
// unit-converted fields. Field order per the OpenSky REST API:
// icao24, callsign, origin_country, time_position, last_contact,
// longitude, latitude, baro_altitude, on_ground, velocity, true_track,
// vertical_rate, sensors, geo_altitude, squawk, spi, position_source.
func transformState(row []json.RawMessage) (Aircraft, error) {
	if len(row) < stateVectorLen {
		return Aircraft{}, fmt.Errorf("expected %d fields, got %d", stateVectorLen, len(row))
	}

	var ac Aircraft

	if err := decodeField(row[0], &ac.ICAO24); err != nil {
		return Aircraft{}, fmt.Errorf("icao24: %w", err)
	}

	var rawCallsign *string
	if err := decodeField(row[1], &rawCallsign); err != nil {
		return Aircraft{}, fmt.Errorf("callsign: %w", err)
	}
	ac.Callsign = cleanCallsign(rawCallsign)

	if err := decodeField(row[2], &ac.OriginCountry); err != nil {
		return Aircraft{}, fmt.Errorf("origin_country: %w", err)
	}
	if err := decodeField(row[3], &ac.TimePosition); err != nil {
		return Aircraft{}, fmt.Errorf("time_position: %w", err)
	}
	if err := decodeField(row[4], &ac.LastContact); err != nil {
		return Aircraft{}, fmt.Errorf("last_contact: %w", err)
	}
	if err := decodeField(row[5], &ac.Longitude); err != nil {
		return Aircraft{}, fmt.Errorf("longitude: %w", err)
	}
	if err := decodeField(row[6], &ac.Latitude); err != nil {
		return Aircraft{}, fmt.Errorf("latitude: %w", err)
	}

	var baroAltM *float64
	if err := decodeField(row[7], &baroAltM); err != nil {
		return Aircraft{}, fmt.Errorf("baro_altitude: %w", err)
	}
	if baroAltM != nil {
		ft := MetersToFeet(*baroAltM)
		ac.BaroAltitudeFt = &ft
	}

	if err := decodeField(row[8], &ac.OnGround); err != nil {
		return Aircraft{}, fmt.Errorf("on_ground: %w", err)
	}

	var velocityMPS *float64
	if err := decodeField(row[9], &velocityMPS); err != nil {
		return Aircraft{}, fmt.Errorf("velocity: %w", err)
	}
	if velocityMPS != nil {
		kt := MPSToKnots(*velocityMPS)
		ac.GroundSpeedKt = &kt
	}

	if err := decodeField(row[10], &ac.TrueTrackDeg); err != nil {
		return Aircraft{}, fmt.Errorf("true_track: %w", err)
	}

	var verticalMPS *float64
	if err := decodeField(row[11], &verticalMPS); err != nil {
		return Aircraft{}, fmt.Errorf("vertical_rate: %w", err)
	}
	if verticalMPS != nil {
		fpm := MPSToFtPerMin(*verticalMPS)
		ac.VerticalRateFtMin = &fpm
	}

	// row[12] is the sensor serial list; it is only populated for
	// authenticated feeder queries and is not surfaced.

	var geoAltM *float64
	if err := decodeField(row[13], &geoAltM); err != nil {
		return Aircraft{}, fmt.Errorf("geo_altitude: %w", err)
	}
	if geoAltM != nil {
		ft := MetersToFeet(*geoAltM)
		ac.GeoAltitudeFt = &ft
	}

	if err := decodeField(row[14], &ac.Squawk); err != nil {
		return Aircraft{}, fmt.Errorf("squawk: %w", err)
	}
	if err := decodeField(row[15], &ac.SPI); err != nil {
		return Aircraft{}, fmt.Errorf("spi: %w", err)
	}
	if err := decodeField(row[16], &ac.PositionSource); err != nil {
		return Aircraft{}, fmt.Errorf("position_source: %w", err)
	}

	return ac, nil
}

// DecodeFlights parses an arrivals/departures response body. Entries
// with a null callsign are retained: absence of a callsign does not
// mean absence of the flight.
func DecodeFlights(body []byte) ([]Flight, error) {
	var entries []flightEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, NewDataFormatError(err, "response is not a valid flights payload")
	}

	flights := make([]Flight, 0, len(entries))
	for _, e := range entries {
		flights = append(flights, Flight{
			ICAO24:              e.ICAO24,
			Callsign:            cleanCallsign(e.Callsign),
			FirstSeen:           e.FirstSeen,
			LastSeen:            e.LastSeen,
			EstDepartureAirport: e.EstDepartureAirport,
			EstArrivalAirport:   e.EstArrivalAirport,
		})
	}
	return flights, nil
}

// FilterByCallsign returns the aircraft whose trimmed callsign equals
// the requested one, case-insensitively. An empty result is a valid
// outcome, not an error.
func FilterByCallsign(aircraft []Aircraft, callsign string) []Aircraft {
	matched := make([]Aircraft, 0, 1)
	for _, ac := range aircraft {
		if ac.HasCallsign() && strings.EqualFold(ac.Callsign, callsign) {
			matched = append(matched, ac)
		}
	}
	return matched
}

// Truncate limits the sequence to at most n records, preserving
// upstream order.
func Truncate(aircraft []Aircraft, n int) []Aircraft {
	if n >= len(aircraft) {
		return aircraft
	}
	return aircraft[:n]
}

// cleanCallsign trims the whitespace padding OpenSky leaves on
// callsigns; a null or empty callsign becomes "unknown" so consumers
// can tell it apart from a real identifier.
func cleanCallsign(raw *string) string {
	if raw == nil {
		return CallsignUnknown
	}
	cs := strings.TrimSpace(*raw)
	if cs == "" {
		return CallsignUnknown
	}
	return cs
}

// decodeField unmarshals one positional value; JSON null leaves the
// destination at its zero value (nil for pointers).
func decodeField(raw json.RawMessage, dst any) error {
	if string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
