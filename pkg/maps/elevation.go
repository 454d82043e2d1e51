package maps

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dendik/mcp-google-map/pkg/geo"
)

const elevationPath = "/maps/api/elevation/json"

type elevationResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Elevation  float64    `json:"elevation"`
		Location   geo.LatLng `json:"location"`
		Resolution *float64   `json:"resolution"`
	} `json:"results"`
}

// Elevation samples the elevation at each location. The result has the
// same length and order as locations, and echoes the queried points.
func (c *Client) Elevation(ctx context.Context, locations []geo.LatLng) ([]ElevationSample, error) {
	if len(locations) == 0 {
		return nil, InvalidInput("locations must contain at least one point")
	}
	points := make([]string, len(locations))
	for i, l := range locations {
		if err := l.Validate(); err != nil {
			return nil, InvalidInput("location %d: %v", i, err)
		}
		points[i] = l.String()
	}

	params := url.Values{}
	params.Set("locations", strings.Join(points, "|"))

	var resp elevationResponse
	err := c.do(ctx, request{
		endpoint: "elevation",
		method:   http.MethodGet,
		url:      c.webServiceURL(elevationPath, params),
	}, &resp)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Status == "ZERO_RESULTS" || (resp.Status == "OK" && len(resp.Results) == 0):
		return nil, notFound("No elevation data returned")
	case resp.Status != "OK":
		return nil, upstream(http.StatusOK, nil, "Failed to get elevation data: %s", resp.Status)
	case len(resp.Results) != len(locations):
		return nil, upstream(http.StatusOK, nil,
			"Failed to get elevation data: expected %d samples, got %d", len(locations), len(resp.Results))
	}

	samples := make([]ElevationSample, len(locations))
	for i, r := range resp.Results {
		samples[i] = ElevationSample{
			Elevation:  r.Elevation,
			Location:   locations[i],
			Resolution: r.Resolution,
		}
	}
	return samples, nil
}
