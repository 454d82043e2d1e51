// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Prompt names.
const (
	MapsUsage            = "maps_usage"
	SearchNearbyExamples = "search_nearby_examples"
)

// RegisterMapsPrompts registers all Google Maps prompts with the MCP server
func RegisterMapsPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt(MapsUsage,
		mcp.WithPromptDescription("Instructions for calling the Google Maps tools"),
	), MapsUsageHandler)

	s.AddPrompt(mcp.NewPrompt(SearchNearbyExamples,
		mcp.WithPromptDescription("Examples of properly formatted search_nearby calls"),
	), SearchNearbyExamplesHandler)
}

// MapsUsageHandler returns the main prompt for the maps tools
func MapsUsageHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	usage := `You have access to Google Maps tools. Every tool answers with a JSON envelope:
{"success": true, "data": ...} or {"success": false, "error": "...", "code": "..."}.

LOCATIONS:
1. search_nearby takes center: {"value": ..., "isCoordinates": ...}.
   Set isCoordinates to true only when value is "latitude,longitude", e.g. "34.6937,135.5023".
   Otherwise value is geocoded as an address and the resolved location is returned next to the results.
2. maps_reverse_geocode and maps_elevation take numeric latitude/longitude in decimal degrees.

KEYWORDS:
search_nearby keyword is a Google place type such as restaurant, cafe, museum or tourist_attraction.
Use the underscore form: "tourist attractions" is rejected with code UNSUPPORTED_FILTER.

DIRECTIONS:
maps_directions sends origin and destination as addresses. Raw coordinates may fail with
code INVALID_WAYPOINT; geocode or reverse geocode them first and pass the address instead.
A failure with code NO_ROUTE_FOUND means no route exists for that mode; try another mode.

DISTANCE MATRIX:
A null cell in data.distances/data.durations means that origin/destination pair is unreachable.
It is not an error for the whole call.`

	return mcp.NewGetPromptResult(
		"Google Maps Tool Usage Guidelines",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(usage),
			),
		},
	), nil
}

// SearchNearbyExamplesHandler returns examples for search_nearby
func SearchNearbyExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examples := `EXAMPLES OF EFFECTIVE SEARCH_NEARBY USAGE:

User: "Find restaurants near Osaka"
AI: *uses search_nearby with {"center": {"value": "Osaka, Japan", "isCoordinates": false}, "keyword": "restaurant", "radius": 1000}*

User: "What sights are within 5 km of 34.6937, 135.5023?"
AI: *uses search_nearby with {"center": {"value": "34.6937,135.5023", "isCoordinates": true}, "keyword": "tourist_attraction", "radius": 5000}*

User: "Any well rated cafes open right now near the Ferry Building in San Francisco?"
AI: *uses search_nearby with {"center": {"value": "Ferry Building, San Francisco, CA"}, "keyword": "cafe", "openNow": true, "minRating": 4}*

Follow up on a result with get_place_details using its place_id, e.g. {"placeId": "ChIJ2eUgeAK6j4ARbn5u_wAGqWA"}.`

	return mcp.NewGetPromptResult(
		"search_nearby Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examples),
			),
		},
	), nil
}
