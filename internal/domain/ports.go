package domain

import (
	"context"
	"image"
)

// EncodedImage is a base64-encoded JPEG still, with any data-URI header
// already stripped. It is the portable token handed to the provider gateway.
type EncodedImage string

// ImageMIMEType is the fixed encoding every capture and upload is
// normalized to before submission.
const ImageMIMEType = "image/jpeg"

// Provider is the gateway capability for the two LLM-backed operations.
// Implementations can be OpenAI-compatible or Gemini; callers are agnostic
// to which one serves the request.
type Provider interface {
	// Name identifies the backing implementation, used to tag recipe IDs.
	Name() string

	// DetectIngredients submits all images in one batched request and
	// returns the merged, deduplicated ingredient names. An absent or null
	// list in the response yields an empty slice, not an error. Any
	// transport, auth, or malformed-response failure is reported as
	// ErrDetectionFailed.
	DetectIngredients(ctx context.Context, images []EncodedImage) ([]string, error)

	// SuggestRecipes builds a brief from the roster and preference and
	// returns a fresh batch of recipes. Failures are reported as
	// ErrSuggestionFailed.
	SuggestRecipes(ctx context.Context, roster []Ingredient, pref DietaryPreference) ([]Recipe, error)
}

// Camera grants access to a capture device. Implementations can be
// GStreamer-backed or in-memory fakes for tests.
type Camera interface {
	// Acquire requests the device and returns a live handle. The handle is
	// exclusively owned by one capture session at a time.
	Acquire(ctx context.Context) (CaptureDevice, error)
}

// CaptureDevice is a revocable handle on a live camera.
type CaptureDevice interface {
	// Frame returns the most recent decoded frame at native resolution.
	// Returns ErrNoFrame until the source has delivered at least one frame.
	Frame() (image.Image, error)

	// Release stops all underlying tracks and invalidates the handle.
	// Idempotent.
	Release()
}
