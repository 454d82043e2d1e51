package maps

import "github.com/dendik/mcp-google-map/pkg/geo"

// Travel modes accepted by the distance matrix and directions operations.
const (
	ModeDriving   = "driving"
	ModeWalking   = "walking"
	ModeBicycling = "bicycling"
	ModeTransit   = "transit"
)

// Modes lists the accepted travel modes in schema order.
var Modes = []string{ModeDriving, ModeWalking, ModeBicycling, ModeTransit}

const (
	// DefaultRadius is the nearby search radius in meters when none is given.
	DefaultRadius = 1000.0

	// MaxRadius is the largest circle the Places API accepts.
	MaxRadius = 50000.0

	// MaxNearbyResults caps a nearby search regardless of radius.
	MaxNearbyResults = 20
)

// LocationQuery is a caller-supplied search origin: either a free-text
// address or a "lat,lng" string when IsCoordinates is set.
type LocationQuery struct {
	Value         string `json:"value"`
	IsCoordinates bool   `json:"isCoordinates"`
}

// ResolvedLocation is a location pinned to coordinates. FormattedAddress
// and PlaceID are only known when the location came from geocoding.
type ResolvedLocation struct {
	Location         geo.LatLng `json:"location"`
	FormattedAddress string     `json:"formatted_address,omitempty"`
	PlaceID          string     `json:"place_id,omitempty"`
}

// AddressComponent is one typed part of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// ReverseGeocodeResult is the top-ranked address for a coordinate.
type ReverseGeocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	PlaceID           string             `json:"place_id"`
	AddressComponents []AddressComponent `json:"address_components"`
}

// NearbyRequest describes a radius-bounded search around Center.
type NearbyRequest struct {
	Center    geo.LatLng
	Radius    float64  // meters; DefaultRadius when zero
	Keyword   string   // place type filter, optional
	OpenNow   bool     // keep only places currently open
	MinRating *float64 // keep only places rated at least this, optional
}

// PlaceSummary is one nearby search result.
type PlaceSummary struct {
	Name         string     `json:"name"`
	PlaceID      string     `json:"place_id"`
	Address      string     `json:"address,omitempty"`
	Location     geo.LatLng `json:"location"`
	Rating       *float64   `json:"rating,omitempty"`
	TotalRatings *int       `json:"total_ratings,omitempty"`
	OpenNow      *bool      `json:"open_now,omitempty"`
}

// PlaceDetail is the full record for one place id.
type PlaceDetail struct {
	PlaceSummary
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Reviews    []Review `json:"reviews"`
}

// Review is one user review of a place.
type Review struct {
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	Time         *int64  `json:"time,omitempty"`          // unix seconds
	RelativeTime string  `json:"relative_time,omitempty"` // e.g. "a month ago"
	AuthorName   string  `json:"author_name"`
}

// Measure is a quantity with its display text: meters or seconds.
type Measure struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// DistanceMatrixRequest asks for every origin × destination pair.
type DistanceMatrixRequest struct {
	Origins      []string
	Destinations []string
	Mode         string
}

// DistanceMatrix holds len(origins) rows of len(destinations) cells.
// A nil cell means the provider found no route for that pair; the same
// index is nil in both Distances and Durations.
type DistanceMatrix struct {
	Distances            [][]*Measure `json:"distances"`
	Durations            [][]*Measure `json:"durations"`
	OriginAddresses      []string     `json:"origin_addresses"`
	DestinationAddresses []string     `json:"destination_addresses"`
}

// DirectionsRequest asks for a route between two waypoints.
type DirectionsRequest struct {
	Origin      string
	Destination string
	Mode        string
}

// RouteLeg is one leg of a route.
type RouteLeg struct {
	Distance      Measure      `json:"distance"`
	Duration      Measure      `json:"duration"`
	StartLocation geo.LatLng   `json:"start_location"`
	EndLocation   geo.LatLng   `json:"end_location"`
	Path          []geo.LatLng `json:"path,omitempty"`
}

// Route is one alternative returned by the routing provider.
type Route struct {
	Distance Measure    `json:"distance"`
	Duration Measure    `json:"duration"`
	Labels   []string   `json:"labels,omitempty"`
	Legs     []RouteLeg `json:"legs"`
}

// RouteResult is a directions computation; Summary and the totals describe
// the first route.
type RouteResult struct {
	Routes        []Route `json:"routes"`
	Summary       string  `json:"summary"`
	TotalDistance Measure `json:"total_distance"`
	TotalDuration Measure `json:"total_duration"`
}

// ElevationSample is the elevation at one queried point.
type ElevationSample struct {
	Elevation  float64    `json:"elevation"`
	Location   geo.LatLng `json:"location"`
	Resolution *float64   `json:"resolution,omitempty"`
}
