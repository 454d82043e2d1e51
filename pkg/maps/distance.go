package maps

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const distanceMatrixPath = "/maps/api/distancematrix/json"

type distanceMatrixResponse struct {
	Status               string   `json:"status"`
	ErrorMessage         string   `json:"error_message"`
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []distanceElement `json:"elements"`
	} `json:"rows"`
}

type distanceElement struct {
	Status   string   `json:"status"`
	Distance *Measure `json:"distance"`
	Duration *Measure `json:"duration"`
}

// DistanceMatrix computes every origin × destination pair in one request.
// Pairs the provider cannot route are nil cells; only a request-level
// failure fails the call.
func (c *Client) DistanceMatrix(ctx context.Context, req DistanceMatrixRequest) (*DistanceMatrix, error) {
	origins, err := ValidateLocations("origins", req.Origins)
	if err != nil {
		return nil, err
	}
	destinations, err := ValidateLocations("destinations", req.Destinations)
	if err != nil {
		return nil, err
	}
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("origins", strings.Join(origins, "|"))
	params.Set("destinations", strings.Join(destinations, "|"))
	params.Set("mode", mode)

	var resp distanceMatrixResponse
	err = c.do(ctx, request{
		endpoint: "distance_matrix",
		method:   http.MethodGet,
		url:      c.webServiceURL(distanceMatrixPath, params),
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Status != "OK" {
		if resp.ErrorMessage != "" {
			return nil, upstream(http.StatusOK, nil, "Distance matrix calculation failed: %s: %s", resp.Status, resp.ErrorMessage)
		}
		return nil, upstream(http.StatusOK, nil, "Distance matrix calculation failed: %s", resp.Status)
	}
	if len(resp.Rows) != len(origins) {
		return nil, upstream(http.StatusOK, nil,
			"Distance matrix calculation failed: expected %d rows, got %d", len(origins), len(resp.Rows))
	}

	matrix := &DistanceMatrix{
		Distances:            make([][]*Measure, len(origins)),
		Durations:            make([][]*Measure, len(origins)),
		OriginAddresses:      resp.OriginAddresses,
		DestinationAddresses: resp.DestinationAddresses,
	}
	for i, row := range resp.Rows {
		if len(row.Elements) != len(destinations) {
			return nil, upstream(http.StatusOK, nil,
				"Distance matrix calculation failed: row %d has %d elements, expected %d",
				i, len(row.Elements), len(destinations))
		}
		matrix.Distances[i] = make([]*Measure, len(destinations))
		matrix.Durations[i] = make([]*Measure, len(destinations))
		for j, el := range row.Elements {
			// Both cells stay nil unless the pair is fully measured.
			if el.Status != "OK" || el.Distance == nil || el.Duration == nil {
				continue
			}
			matrix.Distances[i][j] = el.Distance
			matrix.Durations[i][j] = el.Duration
		}
	}
	if matrix.OriginAddresses == nil {
		matrix.OriginAddresses = []string{}
	}
	if matrix.DestinationAddresses == nil {
		matrix.DestinationAddresses = []string{}
	}
	return matrix, nil
}

// ValidateLocations trims each entry of a matrix axis. A blank entry is
// rejected rather than dropped, so row and column indexes always line up
// with the caller's lists.
func ValidateLocations(field string, in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, InvalidInput("%s must contain at least one location", field)
	}
	out := make([]string, len(in))
	for i, s := range in {
		if out[i] = strings.TrimSpace(s); out[i] == "" {
			return nil, InvalidInput("%s[%d] must not be empty", field, i)
		}
	}
	return out, nil
}
