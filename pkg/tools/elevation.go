package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/maps"
)

// ElevationTool returns the maps_elevation tool definition
func ElevationTool() mcp.Tool {
	return mcp.NewTool(ToolElevation,
		mcp.WithDescription("Get elevation data for locations. Samples are returned in input order. "+
			`Example: {"locations": [{"latitude": 37.4221, "longitude": -122.0841}]}`),
		mcp.WithArray("locations",
			mcp.Required(),
			mcp.Description("List of locations to get elevation data for"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"latitude":  map[string]any{"type": "number", "description": "Latitude"},
					"longitude": map[string]any{"type": "number", "description": "Longitude"},
				},
				"required": []string{"latitude", "longitude"},
			}),
		),
	)
}

// HandleElevation handles maps_elevation calls.
func (s *Service) HandleElevation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	locations, err := points(req, "locations")
	if err != nil {
		return s.invalid(ctx, ToolElevation, start, err)
	}

	env := s.Elevation(ctx, locations)
	return toolResult(env, env.Failed())
}

// Elevation samples each location; output length and order match input.
func (s *Service) Elevation(ctx context.Context, locations []geo.Point) Envelope[[]maps.ElevationSample] {
	var samples []maps.ElevationSample
	err := s.invoke(ctx, ToolElevation, func(ctx context.Context) (err error) {
		if len(locations) == 0 {
			return maps.InvalidInput("locations must contain at least one point")
		}
		coords := make([]geo.LatLng, len(locations))
		for i, p := range locations {
			coords[i] = p.LatLng()
			if err := coords[i].Validate(); err != nil {
				return maps.InvalidInput("locations[%d]: %v", i, err)
			}
		}
		samples, err = s.provider.Elevation(ctx, coords)
		if err == nil && len(samples) != len(coords) {
			err = maps.NewError(maps.KindUpstream, "elevation sample count does not match the requested locations")
		}
		return err
	})
	if err != nil {
		return failure[[]maps.ElevationSample](err)
	}
	return envelopeOf(&samples, nil)
}
