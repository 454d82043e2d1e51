package maps

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dendik/mcp-google-map/pkg/geo"
)

const geocodePath = "/maps/api/geocode/json"

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	PlaceID           string             `json:"place_id"`
	AddressComponents []AddressComponent `json:"address_components"`
	Geometry          struct {
		Location geo.LatLng `json:"location"`
	} `json:"geometry"`
}

// Geocode resolves a free-text address to its top-ranked location.
func (c *Client) Geocode(ctx context.Context, address string) (*ResolvedLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, InvalidInput("address must not be empty")
	}

	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	err := c.do(ctx, request{
		endpoint: "geocode",
		method:   http.MethodGet,
		url:      c.webServiceURL(geocodePath, params),
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := checkWebServiceStatus("Geocoding", resp.Status, resp.ErrorMessage,
		"Location not found for this address"); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, notFound("Location not found for this address")
	}

	top := resp.Results[0]
	return &ResolvedLocation{
		Location:         top.Geometry.Location,
		FormattedAddress: top.FormattedAddress,
		PlaceID:          top.PlaceID,
	}, nil
}

// ReverseGeocode returns the top-ranked address for a coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (*ReverseGeocodeResult, error) {
	point := geo.LatLng{Lat: lat, Lng: lng}
	if err := point.Validate(); err != nil {
		return nil, InvalidInput("%v", err)
	}

	params := url.Values{}
	params.Set("latlng", point.String())

	var resp geocodeResponse
	err := c.do(ctx, request{
		endpoint: "reverse_geocode",
		method:   http.MethodGet,
		url:      c.webServiceURL(geocodePath, params),
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := checkWebServiceStatus("Reverse geocoding", resp.Status, resp.ErrorMessage,
		"Address not found for these coordinates"); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, notFound("Address not found for these coordinates")
	}

	top := resp.Results[0]
	components := top.AddressComponents
	if components == nil {
		components = []AddressComponent{}
	}
	return &ReverseGeocodeResult{
		FormattedAddress:  top.FormattedAddress,
		PlaceID:           top.PlaceID,
		AddressComponents: components,
	}, nil
}
