// Package tools exposes the flight-data operations as MCP tools.
//
// Each tool follows the same pattern: a definition built with
// mcp.NewTool and a handler closure over the opensky service.
// Validation failures and upstream errors come back as tool error
// results; an empty result set is a normal text result.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kxdev/opensky-mcp/internal/opensky"
	"github.com/kxdev/opensky-mcp/pkg/logger"
)

// Tools holds the dependencies shared by all tool handlers
type Tools struct {
	svc    *opensky.Service
	logger *logger.Logger
}

// New creates the tool set backed by the given flight-data service
func New(svc *opensky.Service, log *logger.Logger) *Tools {
	return &Tools{
		svc:    svc,
		logger: log.Named("mcp-tools"),
	}
}

// Register adds all five tools to the MCP server
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(t.regionTool())
	s.AddTool(t.callsignTool())
	s.AddTool(t.allAircraftTool())
	s.AddTool(t.arrivalsTool())
	s.AddTool(t.departuresTool())
}

func (t *Tools) regionTool() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_aircraft_in_region",
			mcp.WithDescription("Get all aircraft currently in a geographic bounding box"),
			mcp.WithNumber("lat_min",
				mcp.Required(),
				mcp.Description("Minimum latitude (e.g., 38.8 for Northern Virginia)"),
			),
			mcp.WithNumber("lat_max",
				mcp.Required(),
				mcp.Description("Maximum latitude (e.g., 39.0)"),
			),
			mcp.WithNumber("lon_min",
				mcp.Required(),
				mcp.Description("Minimum longitude (e.g., -77.5 for DC area)"),
			),
			mcp.WithNumber("lon_max",
				mcp.Required(),
				mcp.Description("Maximum longitude (e.g., -77.0)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			latMin, ok1 := floatArg(request, "lat_min")
			latMax, ok2 := floatArg(request, "lat_max")
			lonMin, ok3 := floatArg(request, "lon_min")
			lonMax, ok4 := floatArg(request, "lon_max")
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return mcp.NewToolResultError("lat_min, lat_max, lon_min and lon_max are required numbers"), nil
			}

			aircraft, err := t.svc.AircraftInRegion(ctx, latMin, latMax, lonMin, lonMax)
			if err != nil {
				return t.errorResult(err), nil
			}
			return mcp.NewToolResultText(renderRegionResult(latMin, latMax, lonMin, lonMax, aircraft)), nil
		}
}

func (t *Tools) callsignTool() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_aircraft_by_callsign",
			mcp.WithDescription("Track a specific aircraft by callsign (e.g., UAL123, AAL456)"),
			mcp.WithString("callsign",
				mcp.Required(),
				mcp.Description("Aircraft callsign (e.g., UAL123)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			callsign := strArg(request, "callsign")

			matched, err := t.svc.AircraftByCallsign(ctx, callsign)
			if err != nil {
				return t.errorResult(err), nil
			}

			cs, _ := opensky.NormalizeCallsign(callsign)
			return mcp.NewToolResultText(renderCallsignResult(cs, matched)), nil
		}
}

func (t *Tools) allAircraftTool() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_all_aircraft",
			mcp.WithDescription("Get all aircraft currently tracked by OpenSky Network (WARNING: Large dataset)"),
			mcp.WithNumber("limit",
				mcp.Description("Limit number of results (default: 50)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			limit := intArg(request, "limit", t.svc.DefaultLimit())

			aircraft, err := t.svc.AllAircraft(ctx, limit)
			if err != nil {
				return t.errorResult(err), nil
			}
			return mcp.NewToolResultText(renderAllAircraftResult(aircraft, opensky.ClampLimit(limit, t.svc.DefaultLimit(), t.svc.MaxLimit()))), nil
		}
}

func (t *Tools) arrivalsTool() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_arrivals",
			mcp.WithDescription("Get flights arriving at an airport in a time window"),
			mcp.WithString("icao",
				mcp.Required(),
				mcp.Description("Airport ICAO code (e.g., KDCA for Reagan National)"),
			),
			mcp.WithNumber("begin",
				mcp.Required(),
				mcp.Description("Begin time as Unix timestamp (seconds since epoch)"),
			),
			mcp.WithNumber("end",
				mcp.Required(),
				mcp.Description("End time as Unix timestamp (seconds since epoch)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		t.flightsHandler(opensky.Arrivals)
}

func (t *Tools) departuresTool() (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_departures",
			mcp.WithDescription("Get flights departing from an airport in a time window"),
			mcp.WithString("icao",
				mcp.Required(),
				mcp.Description("Airport ICAO code (e.g., KIAD for Dulles)"),
			),
			mcp.WithNumber("begin",
				mcp.Required(),
				mcp.Description("Begin time as Unix timestamp (seconds since epoch)"),
			),
			mcp.WithNumber("end",
				mcp.Required(),
				mcp.Description("End time as Unix timestamp (seconds since epoch)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		t.flightsHandler(opensky.Departures)
}

func (t *Tools) flightsHandler(dir opensky.FlightDirection) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		icao := strArg(request, "icao")
		begin, ok1 := floatArg(request, "begin")
		end, ok2 := floatArg(request, "end")
		if !ok1 || !ok2 {
			return mcp.NewToolResultError("begin and end are required Unix timestamps"), nil
		}

		var (
			flights []opensky.Flight
			err     error
		)
		if dir == opensky.Arrivals {
			flights, err = t.svc.Arrivals(ctx, icao, int64(begin), int64(end))
		} else {
			flights, err = t.svc.Departures(ctx, icao, int64(begin), int64(end))
		}
		if err != nil {
			return t.errorResult(err), nil
		}

		return mcp.NewToolResultText(renderFlightsResult(dir, normalizeICAO(icao), int64(begin), int64(end), flights)), nil
	}
}

// errorResult converts a service error into a tool error result. The
// error kind and message both travel to the caller; nothing is retried
// or swallowed here.
func (t *Tools) errorResult(err error) *mcp.CallToolResult {
	t.logger.Warn("Tool call failed",
		logger.String("kind", string(opensky.KindOf(err))),
		logger.Error(err),
	)
	return mcp.NewToolResultError(err.Error())
}
