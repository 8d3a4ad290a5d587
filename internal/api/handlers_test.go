package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kxdev/opensky-mcp/internal/opensky"
	"github.com/kxdev/opensky-mcp/pkg/logger"
)

type stubFetcher struct {
	aircraft []opensky.Aircraft
	flights  []opensky.Flight
	err      error
}

func (s *stubFetcher) States(ctx context.Context, req *opensky.Request) ([]opensky.Aircraft, error) {
	return s.aircraft, s.err
}

func (s *stubFetcher) Flights(ctx context.Context, req *opensky.Request) ([]opensky.Flight, error) {
	return s.flights, s.err
}

func newTestServer(t *testing.T, fetcher *stubFetcher) *httptest.Server {
	t.Helper()
	log := &logger.Logger{Logger: zap.NewNop()}
	svc := opensky.NewService(fetcher, 50, 1000, log)
	router := NewRouter(svc, nil, log)
	server := httptest.NewServer(router.Routes())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestGetAircraftInRegion(t *testing.T) {
	speed := 500.0
	server := newTestServer(t, &stubFetcher{aircraft: []opensky.Aircraft{
		{ICAO24: "a1b2c3", Callsign: "UAL123", GroundSpeedKt: &speed},
	}})

	var resp AircraftResponse
	status := getJSON(t, server.URL+"/api/v1/aircraft/region?lat_min=38.8&lat_max=39.0&lon_min=-77.5&lon_max=-77.0", &resp)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Count != 1 || len(resp.Aircraft) != 1 {
		t.Fatalf("resp = %+v, want one aircraft", resp)
	}
	if resp.Aircraft[0].Callsign != "UAL123" {
		t.Errorf("Callsign = %q, want UAL123", resp.Aircraft[0].Callsign)
	}
}

func TestGetAircraftInRegionValidation(t *testing.T) {
	server := newTestServer(t, &stubFetcher{})

	tests := []struct {
		name  string
		query string
	}{
		{"missing params", "?lat_min=38.8"},
		{"non-numeric", "?lat_min=x&lat_max=39&lon_min=-77.5&lon_max=-77"},
		{"inverted bounds", "?lat_min=39&lat_max=38.8&lon_min=-77.5&lon_max=-77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			status := getJSON(t, server.URL+"/api/v1/aircraft/region"+tt.query, &resp)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if resp.Kind != string(opensky.InvalidArgument) {
				t.Errorf("kind = %q, want %q", resp.Kind, opensky.InvalidArgument)
			}
		})
	}
}

func TestGetAllAircraftLimit(t *testing.T) {
	aircraft := make([]opensky.Aircraft, 100)
	for i := range aircraft {
		aircraft[i] = opensky.Aircraft{ICAO24: "x"}
	}
	server := newTestServer(t, &stubFetcher{aircraft: aircraft})

	var resp AircraftResponse
	status := getJSON(t, server.URL+"/api/v1/aircraft?limit=10", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Count != 10 {
		t.Errorf("count = %d, want 10", resp.Count)
	}
}

func TestGetAircraftByCallsignEmptyResult(t *testing.T) {
	server := newTestServer(t, &stubFetcher{aircraft: []opensky.Aircraft{
		{ICAO24: "a", Callsign: "DAL456"},
	}})

	var resp AircraftResponse
	status := getJSON(t, server.URL+"/api/v1/aircraft/callsign/UAL123", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty result", status)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
}

func TestGetArrivals(t *testing.T) {
	from := "KIAD"
	server := newTestServer(t, &stubFetcher{flights: []opensky.Flight{
		{ICAO24: "a1", Callsign: "UAL100", FirstSeen: 100, LastSeen: 200, EstDepartureAirport: &from},
	}})

	var resp FlightsResponse
	status := getJSON(t, server.URL+"/api/v1/airports/KDCA/arrivals?begin=100&end=200", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Count != 1 || resp.Flights[0].Callsign != "UAL100" {
		t.Errorf("resp = %+v, want one UAL100 flight", resp)
	}
}

func TestGetArrivalsBadWindow(t *testing.T) {
	server := newTestServer(t, &stubFetcher{})

	var resp ErrorResponse
	status := getJSON(t, server.URL+"/api/v1/airports/KDCA/arrivals?begin=200&end=100", &resp)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if resp.Kind != string(opensky.InvalidArgument) {
		t.Errorf("kind = %q, want %q", resp.Kind, opensky.InvalidArgument)
	}
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	server := newTestServer(t, &stubFetcher{
		err: opensky.NewNetworkError(nil, "OpenSky API returned HTTP 503 Service Unavailable for /states/all"),
	})

	var resp ErrorResponse
	status := getJSON(t, server.URL+"/api/v1/aircraft", &resp)
	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}
	if resp.Kind != string(opensky.NetworkError) {
		t.Errorf("kind = %q, want %q", resp.Kind, opensky.NetworkError)
	}
}

func TestGetHealth(t *testing.T) {
	server := newTestServer(t, &stubFetcher{})

	var resp map[string]string
	status := getJSON(t, server.URL+"/api/v1/health", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}
