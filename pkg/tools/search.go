package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/maps"
)

// NearbyParams are the search_nearby inputs. Radius must be set; the MCP
// handler fills in maps.DefaultRadius when the caller omits it.
type NearbyParams struct {
	Center    maps.LocationQuery
	Keyword   string
	Radius    float64
	OpenNow   bool
	MinRating *float64
}

func (p NearbyParams) validate() error {
	if p.Radius <= 0 || p.Radius > maps.MaxRadius {
		return maps.InvalidInput("radius must be greater than 0 and at most %g meters", maps.MaxRadius)
	}
	if p.MinRating != nil && (*p.MinRating < 0 || *p.MinRating > 5) {
		return maps.InvalidInput("minRating must be between 0 and 5")
	}
	return nil
}

// SearchNearbyTool returns the search_nearby tool definition
func SearchNearbyTool() mcp.Tool {
	return mcp.NewTool(ToolSearchNearby,
		mcp.WithDescription("Search for nearby places. The center is an address, landmark name or "+
			"\"lat,lng\" coordinates; keyword is a Google place type such as restaurant, cafe or tourist_attraction. "+
			`Examples: {"center": {"value": "Osaka, Japan"}, "keyword": "restaurant", "radius": 1000}, `+
			`{"center": {"value": "34.6937,135.5023", "isCoordinates": true}, "keyword": "tourist_attraction", "radius": 5000}`),
		mcp.WithObject("center",
			mcp.Required(),
			mcp.Description("Search center point"),
			mcp.Properties(map[string]any{
				"value": map[string]any{
					"type":        "string",
					"description": "Address, landmark name, or coordinates (coordinate format: lat,lng)",
				},
				"isCoordinates": map[string]any{
					"type":        "boolean",
					"description": "Whether the input is coordinates",
					"default":     false,
				},
			}),
		),
		mcp.WithString("keyword",
			mcp.Description("Search keyword (e.g., restaurant, cafe)"),
		),
		mcp.WithNumber("radius",
			mcp.Description("Search radius (meters)"),
			mcp.DefaultNumber(maps.DefaultRadius),
			mcp.Max(maps.MaxRadius),
		),
		mcp.WithBoolean("openNow",
			mcp.Description("Show only places that are currently open"),
			mcp.DefaultBool(false),
		),
		mcp.WithNumber("minRating",
			mcp.Description("Minimum rating requirement (0-5)"),
			mcp.Min(0),
			mcp.Max(5),
		),
	)
}

// HandleSearchNearby handles search_nearby calls.
func (s *Service) HandleSearchNearby(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	center, err := locationQuery(req, "center")
	if err != nil {
		return s.invalid(ctx, ToolSearchNearby, start, err)
	}
	keyword, err := optionalString(req, "keyword", "")
	if err != nil {
		return s.invalid(ctx, ToolSearchNearby, start, err)
	}
	radius, err := optionalFloat(req, "radius")
	if err != nil {
		return s.invalid(ctx, ToolSearchNearby, start, err)
	}
	openNow, err := optionalBool(req, "openNow", false)
	if err != nil {
		return s.invalid(ctx, ToolSearchNearby, start, err)
	}
	minRating, err := optionalFloat(req, "minRating")
	if err != nil {
		return s.invalid(ctx, ToolSearchNearby, start, err)
	}

	params := NearbyParams{
		Center:    center,
		Keyword:   keyword,
		Radius:    maps.DefaultRadius,
		OpenNow:   openNow,
		MinRating: minRating,
	}
	if radius != nil {
		params.Radius = *radius
	}

	env := s.SearchNearby(ctx, params)
	return toolResult(env, env.Failed())
}

// SearchNearby resolves the center once, then searches around it. The
// resolved location is returned next to the places.
func (s *Service) SearchNearby(ctx context.Context, p NearbyParams) NearbyEnvelope {
	var (
		loc    *maps.ResolvedLocation
		places []maps.PlaceSummary
	)
	err := s.invoke(ctx, ToolSearchNearby, func(ctx context.Context) (err error) {
		if err := p.validate(); err != nil {
			return err
		}
		if loc, err = maps.ResolveLocation(ctx, s.provider, p.Center); err != nil {
			return err
		}
		places, err = s.provider.SearchNearby(ctx, maps.NearbyRequest{
			Center:    loc.Location,
			Radius:    p.Radius,
			Keyword:   p.Keyword,
			OpenNow:   p.OpenNow,
			MinRating: p.MinRating,
		})
		return err
	})
	if err != nil {
		return NearbyEnvelope{Envelope: failure[[]maps.PlaceSummary](err)}
	}

	if places == nil {
		places = []maps.PlaceSummary{}
	}
	return NearbyEnvelope{
		Envelope: envelopeOf(&places, nil),
		Location: loc,
	}
}
