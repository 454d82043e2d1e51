package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/maps"
	"github.com/dendik/mcp-google-map/pkg/testutil"
)

var errUnexpectedCall = errors.New("unexpected provider call")

// fakeProvider answers with the configured funcs and records call names.
type fakeProvider struct {
	mu    sync.Mutex
	calls []string

	geocode        func(ctx context.Context, address string) (*maps.ResolvedLocation, error)
	reverseGeocode func(ctx context.Context, lat, lng float64) (*maps.ReverseGeocodeResult, error)
	searchNearby   func(ctx context.Context, req maps.NearbyRequest) ([]maps.PlaceSummary, error)
	placeDetails   func(ctx context.Context, placeID string) (*maps.PlaceDetail, error)
	distanceMatrix func(ctx context.Context, req maps.DistanceMatrixRequest) (*maps.DistanceMatrix, error)
	directions     func(ctx context.Context, req maps.DirectionsRequest) (*maps.RouteResult, error)
	elevation      func(ctx context.Context, locations []geo.LatLng) ([]maps.ElevationSample, error)
}

var _ maps.Provider = (*fakeProvider)(nil)

func (f *fakeProvider) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeProvider) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeProvider) Geocode(ctx context.Context, address string) (*maps.ResolvedLocation, error) {
	f.record("Geocode")
	if f.geocode == nil {
		return nil, errUnexpectedCall
	}
	return f.geocode(ctx, address)
}

func (f *fakeProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*maps.ReverseGeocodeResult, error) {
	f.record("ReverseGeocode")
	if f.reverseGeocode == nil {
		return nil, errUnexpectedCall
	}
	return f.reverseGeocode(ctx, lat, lng)
}

func (f *fakeProvider) SearchNearby(ctx context.Context, req maps.NearbyRequest) ([]maps.PlaceSummary, error) {
	f.record("SearchNearby")
	if f.searchNearby == nil {
		return nil, errUnexpectedCall
	}
	return f.searchNearby(ctx, req)
}

func (f *fakeProvider) PlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetail, error) {
	f.record("PlaceDetails")
	if f.placeDetails == nil {
		return nil, errUnexpectedCall
	}
	return f.placeDetails(ctx, placeID)
}

func (f *fakeProvider) DistanceMatrix(ctx context.Context, req maps.DistanceMatrixRequest) (*maps.DistanceMatrix, error) {
	f.record("DistanceMatrix")
	if f.distanceMatrix == nil {
		return nil, errUnexpectedCall
	}
	return f.distanceMatrix(ctx, req)
}

func (f *fakeProvider) Directions(ctx context.Context, req maps.DirectionsRequest) (*maps.RouteResult, error) {
	f.record("Directions")
	if f.directions == nil {
		return nil, errUnexpectedCall
	}
	return f.directions(ctx, req)
}

func (f *fakeProvider) Elevation(ctx context.Context, locations []geo.LatLng) ([]maps.ElevationSample, error) {
	f.record("Elevation")
	if f.elevation == nil {
		return nil, errUnexpectedCall
	}
	return f.elevation(ctx, locations)
}

func newTestService(p maps.Provider) *Service {
	return NewService(p, testutil.DiscardLogger())
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultJSON returns the text content of a tool result.
func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool result should be text content")
	return text.Text
}

// decodeResult decodes the envelope inside a tool result into out.
func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), out))
}
