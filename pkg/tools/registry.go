package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds all MCP tool registrations for the Google Maps service.
type Registry struct {
	service *Service
	logger  *slog.Logger
}

// NewRegistry creates a new MCP tool registry backed by service.
func NewRegistry(service *Service, logger *slog.Logger) *Registry {
	return &Registry{
		service: service,
		logger:  logger,
	}
}

// ToolDefinition represents a Google Maps MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all Google Maps MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	s := r.service
	return []ToolDefinition{
		// Place Search Tools
		{
			Name:        ToolSearchNearby,
			Description: "Search for nearby places",
			Tool:        SearchNearbyTool(),
			Handler:     s.HandleSearchNearby,
		},
		{
			Name:        ToolPlaceDetails,
			Description: "Get detailed information about a specific place",
			Tool:        PlaceDetailsTool(),
			Handler:     s.HandlePlaceDetails,
		},

		// Geocoding Tools
		{
			Name:        ToolGeocode,
			Description: "Convert address to coordinates",
			Tool:        GeocodeTool(),
			Handler:     s.HandleGeocode,
		},
		{
			Name:        ToolReverseGeocode,
			Description: "Convert coordinates to address",
			Tool:        ReverseGeocodeTool(),
			Handler:     s.HandleReverseGeocode,
		},

		// Routing Tools
		{
			Name:        ToolDistanceMatrix,
			Description: "Calculate distance and time between multiple origins and destinations",
			Tool:        DistanceMatrixTool(),
			Handler:     s.HandleDistanceMatrix,
		},
		{
			Name:        ToolDirections,
			Description: "Get directions between two points",
			Tool:        DirectionsTool(),
			Handler:     s.HandleDirections,
		},

		// Terrain Tools
		{
			Name:        ToolElevation,
			Description: "Get elevation data for locations",
			Tool:        ElevationTool(),
			Handler:     s.HandleElevation,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
