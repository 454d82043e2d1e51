// Package tools is the operation facade: one Service method per MCP tool,
// each returning an Envelope, plus the MCP schemas and handlers that expose
// them.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dendik/mcp-google-map/pkg/maps"
	"github.com/dendik/mcp-google-map/pkg/metrics"
)

// Tool names as registered with the MCP server.
const (
	ToolSearchNearby   = "search_nearby"
	ToolGeocode        = "maps_geocode"
	ToolReverseGeocode = "maps_reverse_geocode"
	ToolDistanceMatrix = "maps_distance_matrix"
	ToolDirections     = "maps_directions"
	ToolElevation      = "maps_elevation"
	ToolPlaceDetails   = "get_place_details"
)

const tracerName = "github.com/dendik/mcp-google-map/pkg/tools"

// Service wraps a maps.Provider. Its methods never return errors or panic;
// every outcome is an envelope.
type Service struct {
	provider maps.Provider
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewService creates a Service backed by provider.
func NewService(provider maps.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// invoke runs fn as one observed tool call: a request id, a span, a
// Prometheus observation and a log line. A panic in fn is returned as an
// error.
func (s *Service) invoke(ctx context.Context, tool string, fn func(ctx context.Context) error) error {
	return s.observe(ctx, tool, time.Now(), fn)
}

// observe is invoke with latency measured from start, which handlers set
// before parsing arguments.
func (s *Service) observe(ctx context.Context, tool string, start time.Time, fn func(ctx context.Context) error) (err error) {
	requestID := uuid.NewString()
	logger := s.logger.With("tool", tool, "request_id", requestID)

	ctx, span := s.tracer.Start(ctx, tool, trace.WithAttributes(
		attribute.String("mcp.tool", tool),
		attribute.String("request_id", requestID),
	))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool panicked", "panic", r)
			err = recoveredError(tool, r)
		}

		elapsed := time.Since(start)
		metrics.ObserveToolCall(tool, outcome(err), elapsed)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Warn("tool call failed", "kind", maps.KindOf(err), "error", err, "elapsed", elapsed)
		} else {
			logger.Info("tool call succeeded", "elapsed", elapsed)
		}
		span.End()
	}()

	logger.Debug("tool call started")
	return fn(ctx)
}
