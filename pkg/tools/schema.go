package tools

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/maps"
)

// Argument helpers. Agents often send numbers and booleans as strings, so
// values are coerced with cast rather than type-asserted.

func argument(req mcp.CallToolRequest, name string) (any, bool) {
	v, ok := req.Params.Arguments[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func requireString(req mcp.CallToolRequest, name string) (string, error) {
	v, ok := argument(req, name)
	if !ok {
		return "", maps.InvalidInput("%s is required", name)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", maps.InvalidInput("%s must be a string", name)
	}
	if s = strings.TrimSpace(s); s == "" {
		return "", maps.InvalidInput("%s must not be empty", name)
	}
	return s, nil
}

func optionalString(req mcp.CallToolRequest, name, def string) (string, error) {
	v, ok := argument(req, name)
	if !ok {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", maps.InvalidInput("%s must be a string", name)
	}
	return strings.TrimSpace(s), nil
}

func requireFloat(req mcp.CallToolRequest, name string) (float64, error) {
	v, ok := argument(req, name)
	if !ok {
		return 0, maps.InvalidInput("%s is required", name)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, maps.InvalidInput("%s must be a number", name)
	}
	return f, nil
}

// optionalFloat returns nil when the argument is absent.
func optionalFloat(req mcp.CallToolRequest, name string) (*float64, error) {
	if _, ok := argument(req, name); !ok {
		return nil, nil
	}
	f, err := requireFloat(req, name)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalBool(req mcp.CallToolRequest, name string, def bool) (bool, error) {
	v, ok := argument(req, name)
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, maps.InvalidInput("%s must be a boolean", name)
	}
	return b, nil
}

// stringList accepts a JSON array of strings or one pipe-delimited string.
func stringList(req mcp.CallToolRequest, name string) ([]string, error) {
	v, ok := argument(req, name)
	if !ok {
		return nil, maps.InvalidInput("%s is required", name)
	}
	if s, isString := v.(string); isString {
		return maps.SplitWaypoints(s), nil
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, maps.InvalidInput("%s must be an array of strings", name)
	}
	return list, nil
}

// locationQuery reads {value, isCoordinates}. A bare string is taken as an
// address.
func locationQuery(req mcp.CallToolRequest, name string) (maps.LocationQuery, error) {
	v, ok := argument(req, name)
	if !ok {
		return maps.LocationQuery{}, maps.InvalidInput("%s is required", name)
	}
	if s, isString := v.(string); isString {
		return maps.LocationQuery{Value: s}, nil
	}
	obj, err := cast.ToStringMapE(v)
	if err != nil {
		return maps.LocationQuery{}, maps.InvalidInput("%s must be an object with a value field", name)
	}
	value, err := cast.ToStringE(obj["value"])
	if err != nil || strings.TrimSpace(value) == "" {
		return maps.LocationQuery{}, maps.InvalidInput("%s.value is required", name)
	}
	isCoordinates := false
	if raw, present := obj["isCoordinates"]; present && raw != nil {
		if isCoordinates, err = cast.ToBoolE(raw); err != nil {
			return maps.LocationQuery{}, maps.InvalidInput("%s.isCoordinates must be a boolean", name)
		}
	}
	return maps.LocationQuery{Value: value, IsCoordinates: isCoordinates}, nil
}

// points reads an array of {latitude, longitude} objects.
func points(req mcp.CallToolRequest, name string) ([]geo.Point, error) {
	v, ok := argument(req, name)
	if !ok {
		return nil, maps.InvalidInput("%s is required", name)
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, maps.InvalidInput("%s must be an array of {latitude, longitude}", name)
	}
	out := make([]geo.Point, 0, len(items))
	for i, item := range items {
		obj, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, maps.InvalidInput("%s[%d] must be an object", name, i)
		}
		lat, errLat := cast.ToFloat64E(obj["latitude"])
		lng, errLng := cast.ToFloat64E(obj["longitude"])
		if errLat != nil || errLng != nil || obj["latitude"] == nil || obj["longitude"] == nil {
			return nil, maps.InvalidInput("%s[%d] needs numeric latitude and longitude", name, i)
		}
		out = append(out, geo.Point{Latitude: lat, Longitude: lng})
	}
	return out, nil
}

// toolResult serializes an envelope as the text content of the MCP result.
// Failed envelopes set isError.
func toolResult(envelope any, failed bool) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	result := mcp.NewToolResultText(string(body))
	result.IsError = failed
	return result, nil
}

// invalid answers a call whose arguments failed to parse. It gets a
// request id, span, observation and log line like any other failed call,
// timed from start.
func (s *Service) invalid(ctx context.Context, tool string, start time.Time, err error) (*mcp.CallToolResult, error) {
	_ = s.observe(ctx, tool, start, func(context.Context) error { return err })
	return toolResult(failure[struct{}](err), true)
}
