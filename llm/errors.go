package llm

import "errors"

// Failure taxonomy for the completion pipeline. Callers match with
// errors.Is and decide between fallback and propagation.
var (
	// ErrUpstreamUnavailable covers network errors and timeouts reaching
	// the completion endpoint.
	ErrUpstreamUnavailable = errors.New("completion endpoint unavailable")

	// ErrUpstreamError is a non-2xx status from the completion endpoint.
	ErrUpstreamError = errors.New("completion endpoint returned an error")

	// ErrMalformedResponse means the response body did not contain the
	// expected choices/message/content fields.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrExtractionFailed means no parseable JSON payload or number could
	// be located in the model output.
	ErrExtractionFailed = errors.New("could not extract a result from model output")
)
