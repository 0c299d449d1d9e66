package imagegen

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// DefaultModel is the image model requested from the Gemini API.
const DefaultModel = "imagen-3.0-generate-002"

// GeminiProvider implements Provider using Google's Gemini API.
type GeminiProvider struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider bound to one model. The API key must
// be present; its absence aborts the run before any work starts.
func NewGeminiProvider(ctx context.Context, logger *slog.Logger, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

// Generate requests exactly one square PNG candidate for the prompt.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (Resource, error) {
	p.logger.Info("Requesting image generation", "model", p.model, "prompt_length", len(prompt))

	resp, err := p.client.Models.GenerateImages(ctx, p.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return Resource{}, fmt.Errorf("generation request failed: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return Resource{}, ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return Resource{}, fmt.Errorf("%w: %s", ErrBlocked, generated.RAIFilteredReason)
	}
	if generated.Image == nil {
		return Resource{}, ErrNoImage
	}

	if len(generated.Image.ImageBytes) > 0 {
		return Resource{Bytes: generated.Image.ImageBytes}, nil
	}
	if generated.Image.GCSURI != "" {
		return Resource{URL: generated.Image.GCSURI}, nil
	}
	return Resource{}, ErrNoImage
}
