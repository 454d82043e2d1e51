package maps

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dendik/mcp-google-map/pkg/geo"
)

const (
	searchNearbyPath = "/v1/places:searchNearby"

	nearbyFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
		"places.rating,places.userRatingCount,places.currentOpeningHours.openNow"

	detailsFieldMask = "id,displayName,formattedAddress,location,rating,userRatingCount," +
		"currentOpeningHours,nationalPhoneNumber,websiteUri,priceLevel,reviews"
)

// priceLevels maps the Places API (New) enum to the 0-4 scale.
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

type placesLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placesText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type searchNearbyBody struct {
	IncludedTypes       []string `json:"includedTypes,omitempty"`
	MaxResultCount      int      `json:"maxResultCount"`
	LanguageCode        string   `json:"languageCode,omitempty"`
	LocationRestriction struct {
		Circle struct {
			Center placesLatLng `json:"center"`
			Radius float64      `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type placesPlace struct {
	ID                  string        `json:"id"`
	DisplayName         *placesText   `json:"displayName"`
	FormattedAddress    string        `json:"formattedAddress"`
	Location            *placesLatLng `json:"location"`
	Rating              *float64      `json:"rating"`
	UserRatingCount     *int          `json:"userRatingCount"`
	CurrentOpeningHours *struct {
		OpenNow *bool `json:"openNow"`
	} `json:"currentOpeningHours"`
	NationalPhoneNumber string         `json:"nationalPhoneNumber"`
	WebsiteURI          string         `json:"websiteUri"`
	PriceLevel          string         `json:"priceLevel"`
	Reviews             []placesReview `json:"reviews"`
}

type placesReview struct {
	Rating            float64     `json:"rating"`
	Text              *placesText `json:"text"`
	OriginalText      *placesText `json:"originalText"`
	AuthorAttribution *struct {
		DisplayName string `json:"displayName"`
	} `json:"authorAttribution"`
	PublishTime                    string `json:"publishTime"`
	RelativePublishTimeDescription string `json:"relativePublishTimeDescription"`
}

type searchNearbyResponse struct {
	Places []placesPlace `json:"places"`
}

// SearchNearby runs a radius-bounded search around req.Center. Keyword is
// sent as a place type filter. OpenNow and MinRating are applied to the
// returned places, since the API has no parameter for either.
func (c *Client) SearchNearby(ctx context.Context, req NearbyRequest) ([]PlaceSummary, error) {
	if err := req.Center.Validate(); err != nil {
		return nil, InvalidInput("%v", err)
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	if radius < 0 || radius > MaxRadius {
		return nil, InvalidInput("radius must be greater than 0 and at most %g meters", MaxRadius)
	}
	if req.MinRating != nil && (*req.MinRating < 0 || *req.MinRating > 5) {
		return nil, InvalidInput("minRating must be between 0 and 5")
	}

	var body searchNearbyBody
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		body.IncludedTypes = []string{keyword}
	}
	body.MaxResultCount = MaxNearbyResults
	body.LanguageCode = c.language
	body.LocationRestriction.Circle.Center = placesLatLng{Latitude: req.Center.Lat, Longitude: req.Center.Lng}
	body.LocationRestriction.Circle.Radius = radius

	var resp searchNearbyResponse
	err := c.do(ctx, request{
		endpoint:  "places_nearby",
		method:    http.MethodPost,
		url:       c.placesURL + searchNearbyPath,
		fieldMask: nearbyFieldMask,
		body:      body,
	}, &resp)
	if err != nil {
		if st, ok := statusOf(err); ok && st.Status == "INVALID_ARGUMENT" &&
			strings.HasPrefix(st.Message, "Unsupported types") {
			return nil, &Error{Kind: KindUnsupportedFilter, Message: st.Message, StatusCode: st.HTTPStatus, Err: err}
		}
		return nil, err
	}

	return filterNearby(resp.Places, req), nil
}

// filterNearby converts places to summaries, dropping duplicate ids and
// entries that fail the open-now or minimum rating filters, and caps the
// result at MaxNearbyResults.
func filterNearby(places []placesPlace, req NearbyRequest) []PlaceSummary {
	out := make([]PlaceSummary, 0, len(places))
	seen := make(map[string]struct{}, len(places))
	for _, p := range places {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		s := p.summary()
		if req.OpenNow && (s.OpenNow == nil || !*s.OpenNow) {
			continue
		}
		if req.MinRating != nil && *req.MinRating > 0 {
			if s.Rating == nil || *s.Rating < *req.MinRating {
				continue
			}
		}
		out = append(out, s)
		if len(out) == MaxNearbyResults {
			break
		}
	}
	return out
}

func (p placesPlace) summary() PlaceSummary {
	s := PlaceSummary{
		PlaceID:      p.ID,
		Address:      p.FormattedAddress,
		Rating:       p.Rating,
		TotalRatings: p.UserRatingCount,
	}
	if p.DisplayName != nil {
		s.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		s.Location = geo.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	}
	if p.CurrentOpeningHours != nil {
		s.OpenNow = p.CurrentOpeningHours.OpenNow
	}
	return s
}

// PlaceDetails fetches the full record of one place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetail, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, InvalidInput("placeId must not be empty")
	}

	u := c.placesURL + "/v1/places/" + url.PathEscape(placeID) + "?languageCode=" + url.QueryEscape(c.language)

	var place placesPlace
	err := c.do(ctx, request{
		endpoint:  "place_details",
		method:    http.MethodGet,
		url:       u,
		fieldMask: detailsFieldMask,
	}, &place)
	if err != nil {
		if st, ok := statusOf(err); ok && (st.HTTPStatus == http.StatusNotFound || st.Status == "NOT_FOUND") {
			return nil, &Error{Kind: KindNotFound, Message: "Place not found: " + placeID, StatusCode: st.HTTPStatus, Err: err}
		}
		return nil, err
	}
	if place.ID == "" {
		return nil, notFound("Place not found: " + placeID)
	}

	detail := &PlaceDetail{
		PlaceSummary: place.summary(),
		Phone:        place.NationalPhoneNumber,
		Website:      place.WebsiteURI,
		Reviews:      make([]Review, 0, len(place.Reviews)),
	}
	if level, ok := priceLevels[place.PriceLevel]; ok {
		detail.PriceLevel = &level
	}
	for _, r := range place.Reviews {
		detail.Reviews = append(detail.Reviews, r.review())
	}
	return detail, nil
}

func (r placesReview) review() Review {
	out := Review{
		Rating:       r.Rating,
		RelativeTime: r.RelativePublishTimeDescription,
	}
	switch {
	case r.Text != nil && r.Text.Text != "":
		out.Text = r.Text.Text
	case r.OriginalText != nil:
		out.Text = r.OriginalText.Text
	}
	if r.AuthorAttribution != nil {
		out.AuthorName = r.AuthorAttribution.DisplayName
	}
	if t, err := time.Parse(time.RFC3339Nano, r.PublishTime); err == nil {
		unix := t.Unix()
		out.Time = &unix
	}
	return out
}
