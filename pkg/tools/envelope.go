package tools

import (
	"github.com/dendik/mcp-google-map/pkg/maps"
)

// Envelope is the uniform result of every tool. Exactly one of Data and
// Error is set; Code carries the error kind next to the message.
type Envelope[T any] struct {
	Success bool      `json:"success"`
	Data    *T        `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Code    maps.Kind `json:"code,omitempty"`
}

// Failed reports whether the envelope carries an error.
func (e Envelope[T]) Failed() bool {
	return !e.Success
}

// NearbyEnvelope is the search_nearby result: the places plus the location
// the search center resolved to.
type NearbyEnvelope struct {
	Envelope[[]maps.PlaceSummary]
	Location *maps.ResolvedLocation `json:"location,omitempty"`
}

func envelopeOf[T any](data *T, err error) Envelope[T] {
	if err != nil {
		return failure[T](err)
	}
	if data == nil {
		return failure[T](errNoData)
	}
	return Envelope[T]{Success: true, Data: data}
}

func failure[T any](err error) Envelope[T] {
	return Envelope[T]{
		Success: false,
		Error:   err.Error(),
		Code:    maps.KindOf(err),
	}
}
