package imagegen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/sitemap-icons/pkg/artifacts"
	"github.com/dtnitsch/sitemap-icons/pkg/fetcher"
	"github.com/dtnitsch/sitemap-icons/pkg/thumbnail"
)

// Adapter turns one slug into one stored icon: prompt the provider, retrieve
// the resource, normalize it to a fixed-size PNG, write it to disk. Every
// sub-step failure comes back as an error value so the batch loop can record
// it and move on; nothing here retries and nothing panics across this
// boundary.
type Adapter struct {
	logger   *slog.Logger
	provider Provider
	fetcher  *fetcher.Fetcher
	manager  *artifacts.Manager
	size     int
}

func NewAdapter(logger *slog.Logger, provider Provider, f *fetcher.Fetcher, manager *artifacts.Manager, size int) *Adapter {
	if size <= 0 {
		size = thumbnail.DefaultSize
	}
	return &Adapter{
		logger:   logger,
		provider: provider,
		fetcher:  f,
		manager:  manager,
		size:     size,
	}
}

// Generate runs the full generate-download-resize-save sequence for a slug
// and returns the stored path. The PNG is fully encoded before the single
// write, so a failure never leaves a partial file over a prior good one.
func (a *Adapter) Generate(ctx context.Context, slug string) (string, error) {
	res, err := a.provider.Generate(ctx, Prompt(slug))
	if err != nil {
		return "", err
	}

	raw := res.Bytes
	if len(raw) == 0 {
		if res.URL == "" {
			return "", ErrNoImage
		}
		raw, err = a.fetcher.GetBytes(res.URL)
		if err != nil {
			return "", fmt.Errorf("failed to download generated image: %w", err)
		}
	}

	png, err := thumbnail.Normalize(raw, a.size)
	if err != nil {
		return "", err
	}

	path, err := a.manager.WriteIcon(slug, png)
	if err != nil {
		return "", err
	}

	a.logger.Info("Icon generated", "slug", slug, "path", path, "size_bytes", len(png))
	return path, nil
}
