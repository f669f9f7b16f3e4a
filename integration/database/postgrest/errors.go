package postgrest

import "errors"

// Configuration and transport errors. Store-level failures are reported
// through the core/store sentinels so repositories stay backend-agnostic.
var (
	ErrEmptyBaseURL       = errors.New("postgrest: empty base URL")
	ErrEmptyAPIKey        = errors.New("postgrest: empty API key")
	ErrInvalidBaseURL     = errors.New("postgrest: invalid base URL")
	ErrHealthcheckFailed  = errors.New("postgrest: healthcheck failed")
	ErrUnexpectedResponse = errors.New("postgrest: unexpected response")
)
