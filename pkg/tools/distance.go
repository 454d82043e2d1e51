package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dendik/mcp-google-map/pkg/maps"
)

// DistanceMatrixTool returns the maps_distance_matrix tool definition
func DistanceMatrixTool() mcp.Tool {
	return mcp.NewTool(ToolDistanceMatrix,
		mcp.WithDescription("Calculate distance and travel time between multiple origins and destinations. "+
			"Unreachable pairs are null cells in both matrices. "+
			`Example: {"origins": ["New York, NY", "Boston, MA"], "destinations": ["Philadelphia, PA", "Washington, DC"], "mode": "driving"}`),
		mcp.WithArray("origins",
			mcp.Required(),
			mcp.Description("List of origin addresses or coordinates"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("destinations",
			mcp.Required(),
			mcp.Description("List of destination addresses or coordinates"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("mode",
			mcp.Description("Travel mode"),
			mcp.Enum(maps.Modes...),
			mcp.DefaultString(maps.ModeDriving),
		),
	)
}

// HandleDistanceMatrix handles maps_distance_matrix calls.
func (s *Service) HandleDistanceMatrix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	origins, err := stringList(req, "origins")
	if err != nil {
		return s.invalid(ctx, ToolDistanceMatrix, start, err)
	}
	destinations, err := stringList(req, "destinations")
	if err != nil {
		return s.invalid(ctx, ToolDistanceMatrix, start, err)
	}
	mode, err := optionalString(req, "mode", maps.ModeDriving)
	if err != nil {
		return s.invalid(ctx, ToolDistanceMatrix, start, err)
	}

	env := s.DistanceMatrix(ctx, maps.DistanceMatrixRequest{
		Origins:      origins,
		Destinations: destinations,
		Mode:         mode,
	})
	return toolResult(env, env.Failed())
}

// DistanceMatrix measures every origin × destination pair.
func (s *Service) DistanceMatrix(ctx context.Context, req maps.DistanceMatrixRequest) Envelope[maps.DistanceMatrix] {
	var matrix *maps.DistanceMatrix
	err := s.invoke(ctx, ToolDistanceMatrix, func(ctx context.Context) (err error) {
		if _, err := maps.ValidateLocations("origins", req.Origins); err != nil {
			return err
		}
		if _, err := maps.ValidateLocations("destinations", req.Destinations); err != nil {
			return err
		}
		if err := validMode(req.Mode); err != nil {
			return err
		}
		matrix, err = s.provider.DistanceMatrix(ctx, req)
		return err
	})
	return envelopeOf(matrix, err)
}

// validMode accepts an empty mode, which the adapter treats as driving.
func validMode(mode string) error {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || maps.ValidMode(mode) {
		return nil
	}
	return maps.InvalidInput("mode must be one of %s", strings.Join(maps.Modes, ", "))
}
