package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/kxdev/opensky-mcp/internal/opensky"
)

// Display caps keep tool results readable inside an assistant context
// window; the underlying records are not affected.
const (
	maxRegionRows = 50
	maxFlightRows = 30
)

func renderRegionResult(latMin, latMax, lonMin, lonMax float64, aircraft []opensky.Aircraft) string {
	if len(aircraft) == 0 {
		return fmt.Sprintf("No aircraft found in region:\n- Lat: %g to %g\n- Lon: %g to %g",
			latMin, latMax, lonMin, lonMax)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Aircraft in Region** (Found: %d)\n\n", len(aircraft))
	fmt.Fprintf(&b, "**Bounding Box:**\n- Latitude: %g to %g\n- Longitude: %g to %g\n\n",
		latMin, latMax, lonMin, lonMax)

	shown := aircraft
	if len(shown) > maxRegionRows {
		shown = shown[:maxRegionRows]
	}
	for i := range shown {
		writeAircraftSummary(&b, &shown[i])
	}

	if len(aircraft) > maxRegionRows {
		fmt.Fprintf(&b, "*Showing %d of %d aircraft. Refine your bounding box for fewer results.*\n",
			maxRegionRows, len(aircraft))
	}
	return b.String()
}

func writeAircraftSummary(b *strings.Builder, ac *opensky.Aircraft) {
	fmt.Fprintf(b, "**%s** (%s)\n- ICAO24: %s\n", ac.Callsign, ac.OriginCountry, ac.ICAO24)
	if ac.Latitude != nil && ac.Longitude != nil {
		fmt.Fprintf(b, "- Position: %.4f, %.4f\n", *ac.Latitude, *ac.Longitude)
	}
	if ac.BaroAltitudeFt != nil {
		fmt.Fprintf(b, "- Altitude: %d ft\n", *ac.BaroAltitudeFt)
	}
	if ac.GroundSpeedKt != nil {
		fmt.Fprintf(b, "- Speed: %.0f knots\n", *ac.GroundSpeedKt)
	}
	if ac.OnGround {
		b.WriteString("- Status: On Ground\n")
	}
	b.WriteString("\n")
}

func renderCallsignResult(callsign string, matched []opensky.Aircraft) string {
	if len(matched) == 0 {
		return fmt.Sprintf("No aircraft found with callsign: %s\n\n"+
			"*Note: Callsign must be exact and aircraft must be airborne.*", callsign)
	}

	ac := &matched[0]
	var b strings.Builder
	fmt.Fprintf(&b, "**Aircraft Tracking: %s**\n\n", ac.Callsign)
	fmt.Fprintf(&b, "**Identification:**\n- ICAO24: %s\n- Country: %s\n\n", ac.ICAO24, ac.OriginCountry)

	if ac.Latitude != nil && ac.Longitude != nil {
		fmt.Fprintf(&b, "**Position:**\n- Latitude: %.4f\n- Longitude: %.4f\n\n", *ac.Latitude, *ac.Longitude)
	}

	b.WriteString("**Altitude & Speed:**\n")
	if ac.BaroAltitudeFt != nil {
		fmt.Fprintf(&b, "- Barometric Altitude: %d ft\n", *ac.BaroAltitudeFt)
	} else {
		b.WriteString("- Barometric Altitude: unavailable\n")
	}
	if ac.GeoAltitudeFt != nil {
		fmt.Fprintf(&b, "- Geometric Altitude: %d ft\n", *ac.GeoAltitudeFt)
	}
	if ac.GroundSpeedKt != nil {
		fmt.Fprintf(&b, "- Ground Speed: %.1f knots\n", *ac.GroundSpeedKt)
	} else {
		b.WriteString("- Ground Speed: unavailable\n")
	}
	if ac.VerticalRateFtMin != nil {
		fmt.Fprintf(&b, "- Vertical Rate: %.0f ft/min\n", *ac.VerticalRateFtMin)
	}
	if ac.TrueTrackDeg != nil {
		fmt.Fprintf(&b, "- Heading: %.0f°\n", *ac.TrueTrackDeg)
	}
	b.WriteString("\n**Status:**\n")
	if ac.OnGround {
		b.WriteString("- On Ground: Yes\n")
	} else {
		b.WriteString("- On Ground: No\n")
	}
	if ac.LastContact != nil {
		fmt.Fprintf(&b, "- Last Contact: %s\n", formatTimestamp(*ac.LastContact))
	}
	if ac.Squawk != nil {
		fmt.Fprintf(&b, "- Squawk: %s\n", *ac.Squawk)
	}
	if len(matched) > 1 {
		fmt.Fprintf(&b, "\n*%d aircraft are broadcasting this callsign; showing the first.*\n", len(matched))
	}
	return b.String()
}

func renderAllAircraftResult(aircraft []opensky.Aircraft, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**All Aircraft** (Showing: %d, limit %d)\n\n", len(aircraft), limit)

	for i := range aircraft {
		ac := &aircraft[i]
		fmt.Fprintf(&b, "**%s** - %s\n", ac.Callsign, ac.OriginCountry)
		if ac.Latitude != nil && ac.Longitude != nil {
			fmt.Fprintf(&b, "  Position: %.2f, %.2f", *ac.Latitude, *ac.Longitude)
			if ac.BaroAltitudeFt != nil {
				fmt.Fprintf(&b, " | Alt: %d ft", *ac.BaroAltitudeFt)
			}
			b.WriteString("\n")
		} else if ac.BaroAltitudeFt != nil {
			fmt.Fprintf(&b, "  Alt: %d ft\n", *ac.BaroAltitudeFt)
		}
	}
	return b.String()
}

func renderFlightsResult(dir opensky.FlightDirection, icao string, begin, end int64, flights []opensky.Flight) string {
	label := "Arrivals"
	if dir == opensky.Departures {
		label = "Departures"
	}

	if len(flights) == 0 {
		return fmt.Sprintf("No %s found for %s in time window:\n- Begin: %s\n- End: %s",
			strings.ToLower(label), icao, formatTimestamp(begin), formatTimestamp(end))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s: %s** (Found: %d)\n\n", label, icao, len(flights))
	fmt.Fprintf(&b, "**Time Window:**\n- %s to %s\n\n", formatTimestamp(begin), formatTimestamp(end))

	shown := flights
	if len(shown) > maxFlightRows {
		shown = shown[:maxFlightRows]
	}
	for _, f := range shown {
		fmt.Fprintf(&b, "**%s**\n- ICAO24: %s\n", f.Callsign, f.ICAO24)
		if dir == opensky.Arrivals && f.EstDepartureAirport != nil {
			fmt.Fprintf(&b, "- From: %s\n", *f.EstDepartureAirport)
		}
		if dir == opensky.Departures && f.EstArrivalAirport != nil {
			fmt.Fprintf(&b, "- To: %s\n", *f.EstArrivalAirport)
		}
		if f.FirstSeen > 0 {
			fmt.Fprintf(&b, "- First Seen: %s\n", formatClock(f.FirstSeen))
		}
		if f.LastSeen > 0 {
			fmt.Fprintf(&b, "- Last Seen: %s\n", formatClock(f.LastSeen))
		}
		b.WriteString("\n")
	}

	if len(flights) > maxFlightRows {
		fmt.Fprintf(&b, "*Showing %d of %d flights*\n", maxFlightRows, len(flights))
	}
	return b.String()
}

func normalizeICAO(icao string) string {
	return strings.ToUpper(strings.TrimSpace(icao))
}

func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05 UTC")
}

func formatClock(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("15:04 UTC")
}
