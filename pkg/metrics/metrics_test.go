package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveToolCall(t *testing.T) {
	before := testutil.ToFloat64(toolCallsTotal.WithLabelValues("maps_geocode", OutcomeSuccess))
	ObserveToolCall("maps_geocode", OutcomeSuccess, 20*time.Millisecond)
	after := testutil.ToFloat64(toolCallsTotal.WithLabelValues("maps_geocode", OutcomeSuccess))
	assert.Equal(t, before+1, after)
}

func TestObserveProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(providerRequestsTotal.WithLabelValues("geocode", "NOT_FOUND"))
	ObserveProviderRequest("geocode", "NOT_FOUND", time.Millisecond)
	after := testutil.ToFloat64(providerRequestsTotal.WithLabelValues("geocode", "NOT_FOUND"))
	assert.Equal(t, before+1, after)
}

func TestHandler(t *testing.T) {
	ObserveToolCall("maps_elevation", OutcomeSuccess, time.Millisecond)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthcheck")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mapsmcp_tool_calls_total")
}
