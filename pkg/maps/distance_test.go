package maps

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendik/mcp-google-map/pkg/testutil"
)

func element(meters, seconds float64) map[string]any {
	return map[string]any{
		"status":   "OK",
		"distance": map[string]any{"value": meters, "text": "x km"},
		"duration": map[string]any{"value": seconds, "text": "y mins"},
	}
}

func TestDistanceMatrix(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.JSON(distanceMatrixPath, http.StatusOK, map[string]any{
		"status":                "OK",
		"origin_addresses":      []string{"Tokyo, Japan", "Osaka, Japan"},
		"destination_addresses": []string{"Kyoto, Japan", "Honolulu, HI, USA", "Nagoya, Japan"},
		"rows": []any{
			map[string]any{"elements": []any{
				element(457000, 18000),
				map[string]any{"status": "ZERO_RESULTS"},
				element(350000, 14000),
			}},
			map[string]any{"elements": []any{
				element(56000, 3000),
				map[string]any{"status": "NOT_FOUND"},
				map[string]any{"status": "OK", "distance": map[string]any{"value": 1, "text": "1 m"}},
			}},
		},
	})
	c := newTestClient(t, stub)

	origins := []string{"Tokyo", "Osaka"}
	destinations := []string{"Kyoto", "Honolulu", "Nagoya"}
	m, err := c.DistanceMatrix(context.Background(), DistanceMatrixRequest{
		Origins:      origins,
		Destinations: destinations,
		Mode:         ModeTransit,
	})
	require.NoError(t, err)

	require.Len(t, m.Distances, len(origins))
	require.Len(t, m.Durations, len(origins))
	for i := range origins {
		require.Len(t, m.Distances[i], len(destinations))
		require.Len(t, m.Durations[i], len(destinations))
		for j := range destinations {
			assert.Equal(t, m.Distances[i][j] == nil, m.Durations[i][j] == nil, "cell %d,%d", i, j)
		}
	}

	assert.Equal(t, 457000.0, m.Distances[0][0].Value)
	assert.Equal(t, 18000.0, m.Durations[0][0].Value)
	assert.Nil(t, m.Distances[0][1])
	assert.Nil(t, m.Distances[1][1])
	assert.Nil(t, m.Distances[1][2], "a cell without a duration is unreachable")
	assert.Equal(t, []string{"Tokyo, Japan", "Osaka, Japan"}, m.OriginAddresses)

	q := stub.Last(t).Query
	assert.Equal(t, "Tokyo|Osaka", q.Get("origins"))
	assert.Equal(t, "Kyoto|Honolulu|Nagoya", q.Get("destinations"))
	assert.Equal(t, ModeTransit, q.Get("mode"))
	assert.Equal(t, testKey, q.Get("key"))
}

func TestDistanceMatrixFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{
			name:    "request level status",
			body:    map[string]any{"status": "MAX_ELEMENTS_EXCEEDED"},
			wantMsg: "Distance matrix calculation failed: MAX_ELEMENTS_EXCEEDED",
		},
		{
			name:    "row count mismatch",
			body:    map[string]any{"status": "OK", "rows": []any{}},
			wantMsg: "Distance matrix calculation failed: expected 1 rows, got 0",
		},
		{
			name: "element count mismatch",
			body: map[string]any{"status": "OK", "rows": []any{
				map[string]any{"elements": []any{}},
			}},
			wantMsg: "Distance matrix calculation failed: row 0 has 0 elements, expected 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := testutil.NewStub(t)
			stub.JSON(distanceMatrixPath, http.StatusOK, tt.body)
			c := newTestClient(t, stub)

			_, err := c.DistanceMatrix(context.Background(), DistanceMatrixRequest{
				Origins:      []string{"A"},
				Destinations: []string{"B"},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUpstream)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestDistanceMatrixValidation(t *testing.T) {
	stub := testutil.NewStub(t)
	c := newTestClient(t, stub)
	ctx := context.Background()

	_, err := c.DistanceMatrix(ctx, DistanceMatrixRequest{Destinations: []string{"B"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.DistanceMatrix(ctx, DistanceMatrixRequest{Origins: []string{"A"}, Destinations: []string{" "}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.DistanceMatrix(ctx, DistanceMatrixRequest{Origins: []string{"A"}, Destinations: []string{"B"}, Mode: "flying"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, stub.Count())
}

func TestDistanceMatrixRejectsBlankEntries(t *testing.T) {
	stub := testutil.NewStub(t)
	c := newTestClient(t, stub)

	tests := []struct {
		name    string
		req     DistanceMatrixRequest
		wantMsg string
	}{
		{
			name:    "blank trailing origin",
			req:     DistanceMatrixRequest{Origins: []string{"Tokyo", "  "}, Destinations: []string{"Kyoto"}},
			wantMsg: "origins[1] must not be empty",
		},
		{
			name:    "blank middle origin",
			req:     DistanceMatrixRequest{Origins: []string{"A", "", "B"}, Destinations: []string{"C"}},
			wantMsg: "origins[1] must not be empty",
		},
		{
			name:    "blank destination",
			req:     DistanceMatrixRequest{Origins: []string{"A"}, Destinations: []string{"", "C"}},
			wantMsg: "destinations[0] must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DistanceMatrix(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
	assert.Equal(t, 0, stub.Count())
}

func TestValidateLocationsTrims(t *testing.T) {
	got, err := ValidateLocations("origins", []string{" Tokyo ", "Osaka"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "Osaka"}, got)
}
