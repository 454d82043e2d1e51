package maps

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/testutil"
)

func TestDirections(t *testing.T) {
	path := []geo.LatLng{{Lat: 38.5, Lng: -120.2}, {Lat: 40.7, Lng: -120.95}}
	stub := testutil.NewStub(t)
	stub.JSON(computeRoutesPath, http.StatusOK, map[string]any{
		"routes": []any{
			map[string]any{
				"distanceMeters": 12500,
				"duration":       "1830s",
				"routeLabels":    []string{"DEFAULT_ROUTE"},
				"legs": []any{map[string]any{
					"distanceMeters": 12500,
					"duration":       "1830s",
					"startLocation":  map[string]any{"latLng": map[string]any{"latitude": 38.5, "longitude": -120.2}},
					"endLocation":    map[string]any{"latLng": map[string]any{"latitude": 40.7, "longitude": -120.95}},
					"polyline":       map[string]any{"encodedPolyline": geo.EncodePolyline(path)},
				}},
			},
			map[string]any{
				"distanceMeters": 14000,
				"duration":       "2000s",
				"routeLabels":    []string{"DEFAULT_ROUTE_ALTERNATE"},
			},
		},
	})
	c := newTestClient(t, stub)

	res, err := c.Directions(context.Background(), DirectionsRequest{
		Origin:      "Osaka Station",
		Destination: "Universal Studios Japan, Osaka",
		Mode:        ModeWalking,
	})
	require.NoError(t, err)
	require.Len(t, res.Routes, 2)

	assert.Equal(t, "DEFAULT_ROUTE", res.Summary)
	assert.Equal(t, Measure{Value: 12500, Text: "12.5 km"}, res.TotalDistance)
	assert.Equal(t, Measure{Value: 1830, Text: "30m30s"}, res.TotalDuration)

	leg := res.Routes[0].Legs[0]
	assert.Equal(t, geo.LatLng{Lat: 38.5, Lng: -120.2}, leg.StartLocation)
	assert.Equal(t, geo.LatLng{Lat: 40.7, Lng: -120.95}, leg.EndLocation)
	require.Len(t, leg.Path, len(path))
	for i := range path {
		assert.InDelta(t, path[i].Lat, leg.Path[i].Lat, 1e-9)
		assert.InDelta(t, path[i].Lng, leg.Path[i].Lng, 1e-9)
	}
	assert.Empty(t, res.Routes[1].Legs)

	var body computeRoutesBody
	last := stub.Last(t)
	require.NoError(t, json.Unmarshal(last.Body, &body))
	assert.Equal(t, "Osaka Station", body.Origin.Address)
	assert.Equal(t, "WALK", body.TravelMode)
	assert.Equal(t, routesFieldMask, last.Header.Get("X-Goog-FieldMask"))
}

func TestDirectionsNoRoute(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"empty object": {},
		"empty routes": {"routes": []any{}},
	} {
		t.Run(name, func(t *testing.T) {
			stub := testutil.NewStub(t)
			stub.JSON(computeRoutesPath, http.StatusOK, body)
			c := newTestClient(t, stub)

			res, err := c.Directions(context.Background(), DirectionsRequest{Origin: "A", Destination: "B"})
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrNoRouteFound)
			assert.Equal(t, "No route found", err.Error())

			var sent computeRoutesBody
			require.NoError(t, json.Unmarshal(stub.Last(t).Body, &sent))
			assert.Equal(t, "DRIVE", sent.TravelMode, "mode defaults to driving")
		})
	}
}

func TestDirectionsCoordinateWaypoint(t *testing.T) {
	const reason = "Invalid waypoint: the address could not be geocoded."
	stub := testutil.NewStub(t)
	stub.JSON(computeRoutesPath, http.StatusBadRequest, testutil.GoogleError(400, "INVALID_ARGUMENT", reason))
	c := newTestClient(t, stub)

	_, err := c.Directions(context.Background(), DirectionsRequest{
		Origin:      "34.6777, 135.4918",
		Destination: "Universal Studios Japan, Osaka",
		Mode:        ModeTransit,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWaypoint)
	assert.Equal(t, reason, err.Error())

	var sent computeRoutesBody
	require.NoError(t, json.Unmarshal(stub.Last(t).Body, &sent))
	assert.Equal(t, "34.6777, 135.4918", sent.Origin.Address, "waypoints are always address typed")
	assert.Equal(t, "TRANSIT", sent.TravelMode)
}

func TestDirectionsInvalidArgumentWithAddresses(t *testing.T) {
	stub := testutil.NewStub(t)
	stub.JSON(computeRoutesPath, http.StatusBadRequest, testutil.GoogleError(400, "INVALID_ARGUMENT", "Bad request."))
	c := newTestClient(t, stub)

	_, err := c.Directions(context.Background(), DirectionsRequest{Origin: "Tokyo", Destination: "Osaka"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestDirectionsValidation(t *testing.T) {
	stub := testutil.NewStub(t)
	c := newTestClient(t, stub)

	_, err := c.Directions(context.Background(), DirectionsRequest{Origin: "A"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.Directions(context.Background(), DirectionsRequest{Origin: "A", Destination: "B", Mode: "boat"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, stub.Count())
}

func TestDurationMeasure(t *testing.T) {
	assert.Equal(t, Measure{Value: 123, Text: "2m3s"}, durationMeasure("123s"))
	assert.Equal(t, Measure{Value: 2, Text: "2s"}, durationMeasure("1.5s"))
	assert.Equal(t, Measure{}, durationMeasure(""))
	assert.Equal(t, Measure{}, durationMeasure("abc"))
}
