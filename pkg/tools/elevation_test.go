package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/maps"
)

func echoElevation(_ context.Context, locations []geo.LatLng) ([]maps.ElevationSample, error) {
	out := make([]maps.ElevationSample, len(locations))
	for i, l := range locations {
		out[i] = maps.ElevationSample{Elevation: float64(i * 100), Location: l}
	}
	return out, nil
}

func TestHandleElevationPreservesOrder(t *testing.T) {
	svc := newTestService(&fakeProvider{elevation: echoElevation})

	input := []any{
		map[string]any{"latitude": 35.3606, "longitude": 138.7274},
		map[string]any{"latitude": "36.5785", "longitude": -118.2923},
		map[string]any{"latitude": -33.8688, "longitude": 151.2093},
	}
	result, err := svc.HandleElevation(context.Background(), callRequest(ToolElevation, map[string]any{"locations": input}))
	require.NoError(t, err)

	var env Envelope[[]maps.ElevationSample]
	decodeResult(t, result, &env)
	require.True(t, env.Success, env.Error)
	require.Len(t, *env.Data, len(input))

	want := []geo.LatLng{{Lat: 35.3606, Lng: 138.7274}, {Lat: 36.5785, Lng: -118.2923}, {Lat: -33.8688, Lng: 151.2093}}
	for i, s := range *env.Data {
		assert.Equal(t, want[i], s.Location)
		assert.Equal(t, float64(i*100), s.Elevation)
	}
}

func TestElevationCountMismatch(t *testing.T) {
	fake := &fakeProvider{
		elevation: func(context.Context, []geo.LatLng) ([]maps.ElevationSample, error) {
			return []maps.ElevationSample{{Elevation: 1}}, nil
		},
	}
	env := newTestService(fake).Elevation(context.Background(), []geo.Point{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}})
	assert.False(t, env.Success)
	assert.Equal(t, maps.KindUpstream, env.Code)
}

func TestElevationNotFound(t *testing.T) {
	fake := &fakeProvider{
		elevation: func(context.Context, []geo.LatLng) ([]maps.ElevationSample, error) {
			return nil, maps.NewError(maps.KindNotFound, "No elevation data returned")
		},
	}
	env := newTestService(fake).Elevation(context.Background(), []geo.Point{{Latitude: 1, Longitude: 1}})
	assert.Equal(t, "No elevation data returned", env.Error)
	assert.Equal(t, maps.KindNotFound, env.Code)
}

func TestHandleElevationInvalid(t *testing.T) {
	tests := map[string]map[string]any{
		"missing":          {},
		"empty":            {"locations": []any{}},
		"not objects":      {"locations": []any{"35,138"}},
		"missing latitude": {"locations": []any{map[string]any{"longitude": 1}}},
		"out of range":     {"locations": []any{map[string]any{"latitude": 100, "longitude": 1}}},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			fake := &fakeProvider{}
			result, err := newTestService(fake).HandleElevation(context.Background(), callRequest(ToolElevation, args))
			require.NoError(t, err)
			assert.True(t, result.IsError)

			var env Envelope[[]maps.ElevationSample]
			decodeResult(t, result, &env)
			assert.Equal(t, maps.KindInvalidInput, env.Code)
			assert.Empty(t, fake.Calls())
		})
	}
}
