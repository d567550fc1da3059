package provider

import (
	"fmt"
	"time"
)

// CallError is a rate-governed call failure: the provider returned a
// non-success status or the transport failed. It carries the originating
// endpoint, the status code when one was received, and the measured call
// latency for observability.
type CallError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Latency    time.Duration
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d (%.0fms): %v",
			e.Provider, e.Endpoint, e.StatusCode, float64(e.Latency.Milliseconds()), e.Err)
	}
	return fmt.Sprintf("%s %s (%.0fms): %v",
		e.Provider, e.Endpoint, float64(e.Latency.Milliseconds()), e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
