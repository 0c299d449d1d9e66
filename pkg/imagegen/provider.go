// Package imagegen wraps the external image-generation provider and the
// post-processing needed to turn one slug into one stored icon file.
package imagegen

import (
	"context"
	"fmt"
)

// promptTemplate embeds the slug verbatim; the surrounding style text is
// constant so regenerated icons stay visually consistent across the set.
const promptTemplate = "Create a 3D minimalist icon design featuring vibrant, floating tokens and coins, " +
	"representing digital finance and cryptocurrency. Include a dynamic composition of colorful elements. " +
	"Subject should relate to '%s'. The icon should have a clean, modern style suitable for UI design."

// Prompt builds the natural-language generation prompt for a slug.
func Prompt(slug string) string {
	return fmt.Sprintf(promptTemplate, slug)
}

// Resource is one generated image as returned by a provider: either inline
// bytes or a retrievable URL, depending on what the backend hands back.
type Resource struct {
	Bytes []byte
	URL   string
}

// Provider accepts a text prompt and returns a single generated image
// resource. Implementations perform no retries; retrying is the caller's
// decision.
type Provider interface {
	Generate(ctx context.Context, prompt string) (Resource, error)
}
