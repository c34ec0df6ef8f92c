// Package llm abstracts the outbound model call so callers and tests can
// substitute a deterministic fake for the real endpoint.
package llm

import (
	"context"
)

// Request is one completion request. Model may be empty, in which case
// the provider's configured default applies.
type Request struct {
	Model  string
	System string
	Prompt string
}

// Response carries the raw generated text. Text is persisted verbatim in
// the query log; interpretation of its contents is the caller's business.
type Response struct {
	Text       string
	TokensUsed int
}

// Provider issues a single blocking completion call.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
