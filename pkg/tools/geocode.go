package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/maps"
)

// GeocodeTool returns the maps_geocode tool definition
func GeocodeTool() mcp.Tool {
	return mcp.NewTool(ToolGeocode,
		mcp.WithDescription("Convert an address or landmark name to coordinates. "+
			`Example: {"address": "1600 Amphitheatre Parkway, Mountain View, CA"}`),
		mcp.WithString("address",
			mcp.Required(),
			mcp.Description("Address or landmark name to convert"),
		),
	)
}

// ReverseGeocodeTool returns the maps_reverse_geocode tool definition
func ReverseGeocodeTool() mcp.Tool {
	return mcp.NewTool(ToolReverseGeocode,
		mcp.WithDescription("Convert coordinates to an address. "+
			`Example: {"latitude": 37.4221, "longitude": -122.0841}`),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude"),
			mcp.Min(-90),
			mcp.Max(90),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude"),
			mcp.Min(-180),
			mcp.Max(180),
		),
	)
}

// HandleGeocode handles maps_geocode calls.
func (s *Service) HandleGeocode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	address, err := requireString(req, "address")
	if err != nil {
		return s.invalid(ctx, ToolGeocode, start, err)
	}

	env := s.Geocode(ctx, address)
	return toolResult(env, env.Failed())
}

// HandleReverseGeocode handles maps_reverse_geocode calls.
func (s *Service) HandleReverseGeocode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	lat, err := requireFloat(req, "latitude")
	if err != nil {
		return s.invalid(ctx, ToolReverseGeocode, start, err)
	}
	lng, err := requireFloat(req, "longitude")
	if err != nil {
		return s.invalid(ctx, ToolReverseGeocode, start, err)
	}

	env := s.ReverseGeocode(ctx, lat, lng)
	return toolResult(env, env.Failed())
}

// Geocode resolves an address to its top-ranked location.
func (s *Service) Geocode(ctx context.Context, address string) Envelope[maps.ResolvedLocation] {
	var loc *maps.ResolvedLocation
	err := s.invoke(ctx, ToolGeocode, func(ctx context.Context) (err error) {
		if strings.TrimSpace(address) == "" {
			return maps.InvalidInput("address is required")
		}
		loc, err = s.provider.Geocode(ctx, address)
		return err
	})
	return envelopeOf(loc, err)
}

// ReverseGeocode returns the address at a coordinate.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lng float64) Envelope[maps.ReverseGeocodeResult] {
	var res *maps.ReverseGeocodeResult
	err := s.invoke(ctx, ToolReverseGeocode, func(ctx context.Context) (err error) {
		if err := geo.ValidateCoords(lat, lng); err != nil {
			return maps.InvalidInput("%v", err)
		}
		res, err = s.provider.ReverseGeocode(ctx, lat, lng)
		return err
	})
	return envelopeOf(res, err)
}
