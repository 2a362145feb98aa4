package llm

import (
	"context"
	"fmt"
)

// Provider is the interface for remote completion backends. One call,
// one prompt in, one text completion out; no retry, no streaming.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// APIStatusError is a non-success status reported by a backend's HTTP
// API (quota, auth, malformed request), as opposed to a transport
// failure. Backends without their own typed errors return this so
// callers can classify the failure.
type APIStatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("%s API error: status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}
