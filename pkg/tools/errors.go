package tools

import (
	"fmt"

	"github.com/dendik/mcp-google-map/pkg/maps"
	"github.com/dendik/mcp-google-map/pkg/metrics"
)

// errNoData guards against a provider returning neither data nor error.
var errNoData = &maps.Error{Kind: maps.KindUpstream, Message: "provider returned no data"}

// recoveredError turns a panic inside a tool call into an upstream error
// so the call still ends in an envelope.
func recoveredError(tool string, r any) error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return &maps.Error{
		Kind:    maps.KindUpstream,
		Message: fmt.Sprintf("internal error in %s", tool),
		Err:     cause,
	}
}

// outcome is the metrics label for a finished call.
func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	return string(maps.KindOf(err))
}
