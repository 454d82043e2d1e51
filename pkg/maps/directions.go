package maps

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dendik/mcp-google-map/pkg/geo"
)

const (
	computeRoutesPath = "/directions/v2:computeRoutes"

	routesFieldMask = "routes.duration,routes.distanceMeters,routes.routeLabels," +
		"routes.legs.distanceMeters,routes.legs.duration,routes.legs.startLocation," +
		"routes.legs.endLocation,routes.legs.polyline"
)

// travelModes maps accepted modes to the Routes API vocabulary.
var travelModes = map[string]string{
	ModeDriving:   "DRIVE",
	ModeWalking:   "WALK",
	ModeBicycling: "BICYCLE",
	ModeTransit:   "TRANSIT",
}

type routesWaypoint struct {
	Address string `json:"address"`
}

type computeRoutesBody struct {
	Origin       routesWaypoint `json:"origin"`
	Destination  routesWaypoint `json:"destination"`
	TravelMode   string         `json:"travelMode"`
	LanguageCode string         `json:"languageCode,omitempty"`
}

type routesLocation struct {
	LatLng placesLatLng `json:"latLng"`
}

type routesLeg struct {
	DistanceMeters float64         `json:"distanceMeters"`
	Duration       string          `json:"duration"`
	StartLocation  *routesLocation `json:"startLocation"`
	EndLocation    *routesLocation `json:"endLocation"`
	Polyline       *struct {
		EncodedPolyline string `json:"encodedPolyline"`
	} `json:"polyline"`
}

type routesRoute struct {
	DistanceMeters float64     `json:"distanceMeters"`
	Duration       string      `json:"duration"`
	RouteLabels    []string    `json:"routeLabels"`
	Legs           []routesLeg `json:"legs"`
}

type computeRoutesResponse struct {
	Routes []routesRoute `json:"routes"`
}

// Directions computes routes between two address-typed waypoints.
func (c *Client) Directions(ctx context.Context, req DirectionsRequest) (*RouteResult, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		return nil, InvalidInput("origin and destination must not be empty")
	}
	mode, err := normalizeMode(req.Mode)
	if err != nil {
		return nil, err
	}

	body := computeRoutesBody{
		Origin:       routesWaypoint{Address: origin},
		Destination:  routesWaypoint{Address: destination},
		TravelMode:   travelModes[mode],
		LanguageCode: c.language,
	}

	var resp computeRoutesResponse
	err = c.do(ctx, request{
		endpoint:  "directions",
		method:    http.MethodPost,
		url:       c.routesURL + computeRoutesPath,
		fieldMask: routesFieldMask,
		body:      body,
	}, &resp)
	if err != nil {
		if st, ok := statusOf(err); ok && st.Status == "INVALID_ARGUMENT" &&
			(LooksLikeCoordinates(origin) || LooksLikeCoordinates(destination)) {
			return nil, &Error{Kind: KindInvalidWaypoint, Message: st.Message, StatusCode: st.HTTPStatus, Err: err}
		}
		return nil, err
	}

	if len(resp.Routes) == 0 {
		return nil, noRouteFound()
	}

	result := &RouteResult{Routes: make([]Route, 0, len(resp.Routes))}
	for _, r := range resp.Routes {
		route := Route{
			Distance: distanceMeasure(r.DistanceMeters),
			Duration: durationMeasure(r.Duration),
			Labels:   r.RouteLabels,
			Legs:     make([]RouteLeg, 0, len(r.Legs)),
		}
		for _, l := range r.Legs {
			route.Legs = append(route.Legs, l.leg())
		}
		result.Routes = append(result.Routes, route)
	}

	first := result.Routes[0]
	result.Summary = strings.Join(first.Labels, ", ")
	result.TotalDistance = first.Distance
	result.TotalDuration = first.Duration
	return result, nil
}

func (l routesLeg) leg() RouteLeg {
	leg := RouteLeg{
		Distance: distanceMeasure(l.DistanceMeters),
		Duration: durationMeasure(l.Duration),
	}
	if l.StartLocation != nil {
		leg.StartLocation = geo.LatLng{Lat: l.StartLocation.LatLng.Latitude, Lng: l.StartLocation.LatLng.Longitude}
	}
	if l.EndLocation != nil {
		leg.EndLocation = geo.LatLng{Lat: l.EndLocation.LatLng.Latitude, Lng: l.EndLocation.LatLng.Longitude}
	}
	if l.Polyline != nil && l.Polyline.EncodedPolyline != "" {
		leg.Path = geo.DecodePolyline(l.Polyline.EncodedPolyline)
	}
	return leg
}

func distanceMeasure(meters float64) Measure {
	if meters == 0 {
		return Measure{}
	}
	return Measure{Value: meters, Text: strconv.FormatFloat(meters/1000, 'f', -1, 64) + " km"}
}

// durationMeasure parses a protobuf duration such as "123s". Unparseable
// or empty values yield a zero measure.
func durationMeasure(s string) Measure {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return Measure{}
	}
	d = d.Round(time.Second)
	return Measure{Value: d.Seconds(), Text: d.String()}
}
