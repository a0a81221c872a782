package llm

import "errors"

// Typed error classes for model-endpoint failures. Callers branch with
// errors.Is instead of matching message substrings.
var (
	// ErrRateLimited means the provider rejected the call with a quota or
	// rate-limit response (HTTP 429).
	ErrRateLimited = errors.New("model provider rate limit exceeded")

	// ErrEmptyResponse means the call succeeded but returned no usable
	// content.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrNotConfigured means the client was never given an endpoint or key.
	ErrNotConfigured = errors.New("model client not configured")
)
