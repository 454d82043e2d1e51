// Package geo provides the coordinate types shared by the provider adapter
// and the tool layer, together with range checks and the encoded polyline
// codec used by route geometry.
package geo

import (
	"fmt"
	"math"
	"strconv"
)

// LatLng is a WGS-84 coordinate pair as exchanged with callers.
//
// Example:
//
//	p := geo.LatLng{Lat: 37.4221, Lng: -122.0841}
//	fmt.Println(p) // 37.4221,-122.0841
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point is the input form of a coordinate used by tools that take
// explicit latitude/longitude objects, such as maps_elevation.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatLng converts an input point into the canonical pair.
func (p Point) LatLng() LatLng {
	return LatLng{Lat: p.Latitude, Lng: p.Longitude}
}

// String formats the pair the way Google web services expect it in
// query strings ("lat,lng").
func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Validate reports whether l lies inside the valid latitude and longitude ranges.
func (l LatLng) Validate() error {
	return ValidateCoords(l.Lat, l.Lng)
}

// ValidateCoords checks that lat is within [-90, 90] and lng within [-180, 180].
// NaN and infinite values are rejected.
func ValidateCoords(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("invalid latitude %v: must be between -90 and 90", lat)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return fmt.Errorf("invalid longitude %v: must be between -180 and 180", lng)
	}
	return nil
}
