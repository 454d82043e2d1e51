package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/maps"
)

// PlaceDetailsTool returns the get_place_details tool definition
func PlaceDetailsTool() mcp.Tool {
	return mcp.NewTool(ToolPlaceDetails,
		mcp.WithDescription("Get detailed information about a specific place: contact details, "+
			"price level, opening state and reviews. "+
			`Example: {"placeId": "ChIJ2eUgeAK6j4ARbn5u_wAGqWA"}`),
		mcp.WithString("placeId",
			mcp.Required(),
			mcp.Description("Google Maps Place ID"),
		),
	)
}

// HandlePlaceDetails handles get_place_details calls.
func (s *Service) HandlePlaceDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	placeID, err := requireString(req, "placeId")
	if err != nil {
		return s.invalid(ctx, ToolPlaceDetails, start, err)
	}

	env := s.PlaceDetails(ctx, placeID)
	return toolResult(env, env.Failed())
}

// PlaceDetails fetches the full record for one place id.
func (s *Service) PlaceDetails(ctx context.Context, placeID string) Envelope[maps.PlaceDetail] {
	var detail *maps.PlaceDetail
	err := s.invoke(ctx, ToolPlaceDetails, func(ctx context.Context) (err error) {
		if strings.TrimSpace(placeID) == "" {
			return maps.InvalidInput("placeId is required")
		}
		detail, err = s.provider.PlaceDetails(ctx, placeID)
		return err
	})
	return envelopeOf(detail, err)
}
