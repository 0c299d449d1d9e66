package imagegen

import "errors"

var (
	// ErrMissingAPIKey indicates the provider credential was absent; callers
	// treat this as fatal before any processing begins.
	ErrMissingAPIKey = errors.New("image provider API key is missing")

	// ErrNoImage indicates the provider returned a response with no usable
	// image resource.
	ErrNoImage = errors.New("provider returned no image")

	// ErrBlocked indicates the provider refused the prompt (safety filters).
	ErrBlocked = errors.New("generation blocked by provider")
)
