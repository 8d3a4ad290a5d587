package opensky

import (
	"context"
	"testing"
)

// fakeFetcher satisfies Fetcher without network access and records the
// requests it receives.
type fakeFetcher struct {
	aircraft []Aircraft
	flights  []Flight
	err      error
	requests []*Request
}

func (f *fakeFetcher) States(ctx context.Context, req *Request) ([]Aircraft, error) {
	f.requests = append(f.requests, req)
	return f.aircraft, f.err
}

func (f *fakeFetcher) Flights(ctx context.Context, req *Request) ([]Flight, error) {
	f.requests = append(f.requests, req)
	return f.flights, f.err
}

func newTestService(f *fakeFetcher) *Service {
	return NewService(f, 50, 1000, testLogger())
}

func TestServiceAircraftByCallsign(t *testing.T) {
	fetcher := &fakeFetcher{aircraft: []Aircraft{
		{ICAO24: "a", Callsign: "UAL123"},
		{ICAO24: "b", Callsign: "DAL456"},
	}}
	svc := newTestService(fetcher)

	matched, err := svc.AircraftByCallsign(context.Background(), "ual123")
	if err != nil {
		t.Fatalf("AircraftByCallsign() error = %v", err)
	}
	if len(matched) != 1 || matched[0].ICAO24 != "a" {
		t.Errorf("matched = %v, want single UAL123 record", matched)
	}

	// No match is success with an empty slice.
	none, err := svc.AircraftByCallsign(context.Background(), "SWA1")
	if err != nil {
		t.Fatalf("AircraftByCallsign(no match) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("matched = %v, want empty", none)
	}
}

func TestServiceCallsignValidationSkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher)

	_, err := svc.AircraftByCallsign(context.Background(), "   ")
	if KindOf(err) != InvalidArgument {
		t.Fatalf("KindOf(err) = %v, want %v", KindOf(err), InvalidArgument)
	}
	if len(fetcher.requests) != 0 {
		t.Errorf("fetcher saw %d requests, want 0", len(fetcher.requests))
	}
}

func TestServiceAllAircraftClampsLimit(t *testing.T) {
	aircraft := make([]Aircraft, 1500)
	for i := range aircraft {
		aircraft[i] = Aircraft{ICAO24: string(rune('a' + i%26))}
	}
	fetcher := &fakeFetcher{aircraft: aircraft}
	svc := newTestService(fetcher)

	got, err := svc.AllAircraft(context.Background(), 10000)
	if err != nil {
		t.Fatalf("AllAircraft() error = %v", err)
	}
	if len(got) != 1000 {
		t.Errorf("len(got) = %d, want hard cap 1000", len(got))
	}
	// Upstream order preserved.
	if got[0].ICAO24 != aircraft[0].ICAO24 || got[999].ICAO24 != aircraft[999].ICAO24 {
		t.Error("truncation changed record order")
	}

	got, err = svc.AllAircraft(context.Background(), 0)
	if err != nil {
		t.Fatalf("AllAircraft(default) error = %v", err)
	}
	if len(got) != 50 {
		t.Errorf("len(got) = %d, want default 50", len(got))
	}
}

func TestServiceRegionRejectsBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher)

	_, err := svc.AircraftInRegion(context.Background(), 39.0, 38.8, -77.5, -77.0)
	if KindOf(err) != InvalidArgument {
		t.Fatalf("KindOf(err) = %v, want %v", KindOf(err), InvalidArgument)
	}
	if len(fetcher.requests) != 0 {
		t.Errorf("fetcher saw %d requests, want 0", len(fetcher.requests))
	}
}

func TestServiceArrivalsRejectsBadWindow(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(fetcher)

	// begin >= end fails regardless of icao validity.
	for _, icao := range []string{"KDCA", "bogus"} {
		_, err := svc.Arrivals(context.Background(), icao, 200, 100)
		if KindOf(err) != InvalidArgument {
			t.Errorf("Arrivals(%s): KindOf(err) = %v, want %v", icao, KindOf(err), InvalidArgument)
		}
	}
	if len(fetcher.requests) != 0 {
		t.Errorf("fetcher saw %d requests, want 0", len(fetcher.requests))
	}
}

func TestServiceNetworkErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{err: NewNetworkError(nil, "OpenSky API returned HTTP 502 Bad Gateway for /states/all")}
	svc := newTestService(fetcher)

	_, err := svc.AllAircraft(context.Background(), 10)
	if KindOf(err) != NetworkError {
		t.Errorf("KindOf(err) = %v, want %v", KindOf(err), NetworkError)
	}
}

func TestServiceDepartures(t *testing.T) {
	fetcher := &fakeFetcher{flights: []Flight{{ICAO24: "a1", Callsign: "UAL100"}}}
	svc := newTestService(fetcher)

	flights, err := svc.Departures(context.Background(), "kiad", 100, 200)
	if err != nil {
		t.Fatalf("Departures() error = %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("len(flights) = %d, want 1", len(flights))
	}
	if len(fetcher.requests) != 1 {
		t.Fatalf("fetcher saw %d requests, want 1", len(fetcher.requests))
	}
	if fetcher.requests[0].Path != "/flights/departure" {
		t.Errorf("Path = %q, want /flights/departure", fetcher.requests[0].Path)
	}
}
