// Package maps is the provider adapter: one method per operation, each
// issuing exactly one request to Google Maps Platform and reshaping the
// response into this module's types.
package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dendik/mcp-google-map/pkg/geo"
	"github.com/dendik/mcp-google-map/pkg/metrics"
	"github.com/dendik/mcp-google-map/pkg/version"
)

const (
	// Default endpoints of the Google Maps Platform API families in use.
	DefaultMapsBaseURL   = "https://maps.googleapis.com"
	DefaultPlacesBaseURL = "https://places.googleapis.com"
	DefaultRoutesBaseURL = "https://routes.googleapis.com"

	// DefaultTimeout bounds every provider call.
	DefaultTimeout = 10 * time.Second

	// DefaultLanguage is sent with every request that accepts one.
	DefaultLanguage = "en"

	// maxErrorBody limits how much of a failed response is read.
	maxErrorBody = 1 << 20
)

// Provider is the set of operations the tool layer needs from a maps
// backend. Client is the Google Maps Platform implementation.
type Provider interface {
	Geocode(ctx context.Context, address string) (*ResolvedLocation, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*ReverseGeocodeResult, error)
	SearchNearby(ctx context.Context, req NearbyRequest) ([]PlaceSummary, error)
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetail, error)
	DistanceMatrix(ctx context.Context, req DistanceMatrixRequest) (*DistanceMatrix, error)
	Directions(ctx context.Context, req DirectionsRequest) (*RouteResult, error)
	Elevation(ctx context.Context, locations []geo.LatLng) ([]ElevationSample, error)
}

// Config is the construction-time configuration of a Client.
type Config struct {
	APIKey        string
	Language      string
	Timeout       time.Duration
	MapsBaseURL   string
	PlacesBaseURL string
	RoutesBaseURL string

	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to Google Maps Platform. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	apiKey     string
	language   string
	timeout    time.Duration
	mapsURL    string
	placesURL  string
	routesURL  string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Provider = (*Client)(nil)

// NewClient creates a Client. The API key is required; every other field
// falls back to its default.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("maps: API key is required")
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		timeout:    cfg.Timeout,
		mapsURL:    strings.TrimRight(cfg.MapsBaseURL, "/"),
		placesURL:  strings.TrimRight(cfg.PlacesBaseURL, "/"),
		routesURL:  strings.TrimRight(cfg.RoutesBaseURL, "/"),
		userAgent:  version.UserAgent(),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.mapsURL == "" {
		c.mapsURL = DefaultMapsBaseURL
	}
	if c.placesURL == "" {
		c.placesURL = DefaultPlacesBaseURL
	}
	if c.routesURL == "" {
		c.routesURL = DefaultRoutesBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

// newHTTPClient returns a pooled client whose transport emits a client span
// per upstream request. Deadlines come from the per-call context.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{Transport: otelhttp.NewTransport(transport)}
}

// request describes one upstream call.
type request struct {
	endpoint  string // metrics and log label
	method    string
	url       string
	fieldMask string // set for Places (New) and Routes; selects header auth
	body      any
}

// googleAPIError is the error body of the Places (New) and Routes APIs.
type googleAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Status of a failed newer-generation API call, extracted for callers
// that map specific rejections to their own kinds.
type apiStatus struct {
	HTTPStatus int
	Status     string
	Message    string
}

// statusError carries an apiStatus through the error chain.
type statusError struct {
	apiStatus
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d %s: %s", e.HTTPStatus, e.Status, e.Message)
}

// do executes r under the per-call timeout and decodes a 200 response into
// out. Non-200 responses return *Error wrapping a *statusError.
func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = string(KindOf(err))
		}
		metrics.ObserveProviderRequest(r.endpoint, outcome, time.Since(start))
		c.logger.Debug("provider request",
			"endpoint", r.endpoint,
			"outcome", outcome,
			"elapsed", time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return upstream(0, err, "failed to encode %s request", r.endpoint)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return upstream(0, err, "failed to create %s request", r.endpoint)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.fieldMask != "" {
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", r.fieldMask)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return upstream(0, err, "%s request timed out after %s", r.endpoint, c.timeout)
		}
		return upstream(0, err, "failed to communicate with the %s service", r.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status := apiStatus{HTTPStatus: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr googleAPIError
		if json.Unmarshal(raw, &apiErr) == nil {
			status.Status = apiErr.Error.Status
			status.Message = apiErr.Error.Message
		}
		if status.Message == "" {
			status.Message = http.StatusText(resp.StatusCode)
		}
		return upstream(resp.StatusCode, &statusError{status},
			"%s service error (status %d): %s", r.endpoint, resp.StatusCode, status.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstream(resp.StatusCode, err, "failed to parse %s response", r.endpoint)
	}
	return nil
}

// statusOf extracts the provider status of a failed do call.
func statusOf(err error) (apiStatus, bool) {
	var se *statusError
	if errors.As(err, &se) {
		return se.apiStatus, true
	}
	return apiStatus{}, false
}

// webServiceURL builds a legacy Maps web service URL with key and language.
func (c *Client) webServiceURL(path string, params url.Values) string {
	params.Set("key", c.apiKey)
	if params.Get("language") == "" && path != elevationPath {
		params.Set("language", c.language)
	}
	return c.mapsURL + path + "?" + params.Encode()
}

// checkWebServiceStatus maps the status field of a legacy web service
// response. ZERO_RESULTS is returned as notFound(zeroMessage).
func checkWebServiceStatus(endpoint, status, message, zeroMessage string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return notFound(zeroMessage)
	}
	if message != "" {
		return upstream(http.StatusOK, nil, "%s failed: %s: %s", endpoint, status, message)
	}
	return upstream(http.StatusOK, nil, "%s failed: %s", endpoint, status)
}
