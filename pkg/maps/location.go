package maps

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dendik/mcp-google-map/pkg/geo"
)

// coordinatePattern matches a bare "lat,lng" pair with optional spaces.
var coordinatePattern = regexp.MustCompile(`^\s*[-+]?\d+(\.\d+)?\s*,\s*[-+]?\d+(\.\d+)?\s*$`)

// LooksLikeCoordinates reports whether s is shaped like "lat,lng". Range
// is not checked.
func LooksLikeCoordinates(s string) bool {
	return coordinatePattern.MatchString(s)
}

// ParseCoordinates parses "lat,lng" into a ResolvedLocation without calling
// the provider. Values outside the WGS84 range are rejected.
func ParseCoordinates(text string) (*ResolvedLocation, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return nil, InvalidInput("Invalid coordinate format. Please use 'latitude,longitude' format")
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return nil, InvalidInput("Invalid coordinate format. Please use 'latitude,longitude' format")
	}
	if err := geo.ValidateCoords(lat, lng); err != nil {
		return nil, InvalidInput("Invalid coordinates: %v", err)
	}

	return &ResolvedLocation{Location: geo.LatLng{Lat: lat, Lng: lng}}, nil
}

// ResolveLocation turns a LocationQuery into coordinates, parsing locally
// when IsCoordinates is set and geocoding otherwise.
func ResolveLocation(ctx context.Context, p Provider, q LocationQuery) (*ResolvedLocation, error) {
	if q.IsCoordinates {
		return ParseCoordinates(q.Value)
	}
	if strings.TrimSpace(q.Value) == "" {
		return nil, InvalidInput("location value must not be empty")
	}
	return p.Geocode(ctx, q.Value)
}

// SplitWaypoints splits a pipe separated list, trimming entries and
// dropping empty ones.
func SplitWaypoints(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidMode reports whether mode is one of Modes.
func ValidMode(mode string) bool {
	return slices.Contains(Modes, mode)
}

// normalizeMode defaults an empty mode to driving and rejects unknown ones.
func normalizeMode(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return ModeDriving, nil
	}
	if !ValidMode(mode) {
		return "", InvalidInput("mode must be one of %s", strings.Join(Modes, ", "))
	}
	return mode, nil
}
