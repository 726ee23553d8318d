package domain

import "errors"

// Sentinel errors used across layers. Gateway-facing failures are
// normalized to one of the two coarse kinds below before they reach the
// user; provider-specific detail stays in the logs.
var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrNoFrame           = errors.New("no decoded frame available")
	ErrNoImages          = errors.New("no images to ingest")
	ErrDetectionFailed   = errors.New("ingredient detection failed")
	ErrSuggestionFailed  = errors.New("recipe generation failed")
	ErrEmptyRoster       = errors.New("roster is empty")
)
