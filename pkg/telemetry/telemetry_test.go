package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/dendik/mcp-google-map/pkg/version"
)

func TestResource(t *testing.T) {
	res, err := Resource("maps-test")
	require.NoError(t, err)

	attrs := make(map[string]string)
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "maps-test", attrs[string(semconv.ServiceNameKey)])
	assert.Equal(t, version.BuildVersion, attrs[string(semconv.ServiceVersionKey)])
}

func TestResourceRequiresName(t *testing.T) {
	_, err := Resource("")
	assert.Error(t, err)
}

func TestInitTracer(t *testing.T) {
	// The gRPC exporter connects lazily, so no collector is needed.
	shutdown, err := InitTracer(context.Background(), "maps-test", "127.0.0.1:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
