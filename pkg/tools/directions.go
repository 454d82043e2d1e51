package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/maps"
)

// DirectionsTool returns the maps_directions tool definition
func DirectionsTool() mcp.Tool {
	return mcp.NewTool(ToolDirections,
		mcp.WithDescription("Get directions between two points. Waypoints are sent as addresses; "+
			"raw \"lat,lng\" waypoints may be rejected by the routing service. "+
			`Example: {"origin": "New York, NY", "destination": "Boston, MA", "mode": "driving"}`),
		mcp.WithString("origin",
			mcp.Required(),
			mcp.Description("Origin address or coordinates"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination address or coordinates"),
		),
		mcp.WithString("mode",
			mcp.Description("Travel mode"),
			mcp.Enum(maps.Modes...),
			mcp.DefaultString(maps.ModeDriving),
		),
	)
}

// HandleDirections handles maps_directions calls.
func (s *Service) HandleDirections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	origin, err := requireString(req, "origin")
	if err != nil {
		return s.invalid(ctx, ToolDirections, start, err)
	}
	destination, err := requireString(req, "destination")
	if err != nil {
		return s.invalid(ctx, ToolDirections, start, err)
	}
	mode, err := optionalString(req, "mode", maps.ModeDriving)
	if err != nil {
		return s.invalid(ctx, ToolDirections, start, err)
	}

	env := s.Directions(ctx, maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	})
	return toolResult(env, env.Failed())
}

// Directions computes a route. Zero routes is a failure, never an empty
// success.
func (s *Service) Directions(ctx context.Context, req maps.DirectionsRequest) Envelope[maps.RouteResult] {
	var route *maps.RouteResult
	err := s.invoke(ctx, ToolDirections, func(ctx context.Context) (err error) {
		if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
			return maps.InvalidInput("origin and destination are required")
		}
		if err := validMode(req.Mode); err != nil {
			return err
		}
		route, err = s.provider.Directions(ctx, req)
		if err == nil && (route == nil || len(route.Routes) == 0) {
			err = maps.NewError(maps.KindNoRouteFound, "No route found")
		}
		return err
	})
	return envelopeOf(route, err)
}
