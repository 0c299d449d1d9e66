// Package run implements the batch orchestration loop: walk the candidate
// list in order, skip completed slugs, generate one icon at a time, and flush
// the checkpoint after every attempted item.
package run

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/sitemap-icons/internal/common"
	"github.com/dtnitsch/sitemap-icons/models"
	"github.com/dtnitsch/sitemap-icons/pkg/checkpoint"
	"github.com/dtnitsch/sitemap-icons/pkg/db"
	"github.com/dtnitsch/sitemap-icons/pkg/slug"
)

// Generator is the adapter boundary: one slug in, one stored path out. All
// per-item failures arrive here as error values, never as panics.
type Generator interface {
	Generate(ctx context.Context, slug string) (string, error)
}

// Runner drives one batch run. It is the exclusive owner of the in-memory
// checkpoint state and the only writer of its durable form; items are
// processed strictly one at a time.
type Runner struct {
	logger    *slog.Logger
	cfg       *models.RunConfig
	store     *checkpoint.Store
	generator Generator
	database  *db.DB
}

func NewRunner(logger *slog.Logger, cfg *models.RunConfig, store *checkpoint.Store, generator Generator, database *db.DB) *Runner {
	return &Runner{
		logger:    logger,
		cfg:       cfg,
		store:     store,
		generator: generator,
		database:  database,
	}
}

// Run processes every candidate once. Per-item failures are recorded and the
// loop continues; only a checkpoint load/write failure (or context
// cancellation) aborts the run, because continuing without durable progress
// tracking would reprocess items on resume.
func (r *Runner) Run(ctx context.Context, candidates []string) (*Summary, error) {
	startTime := time.Now()

	state, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Candidates: len(candidates)}

	if len(candidates) == 0 {
		r.logger.Info("No candidates to process")
		summary.AllFailures = state.FailedSlugs
		summary.ElapsedSeconds = time.Since(startTime).Seconds()
		return summary, nil
	}

	var runID int64
	if r.database != nil && !r.cfg.DryRun {
		runID, err = r.database.CreateRun(r.cfg.SitemapURL, len(candidates), r.cfg.OutputDir)
		if err != nil {
			// History is observational; a failed insert must not stop the batch.
			r.logger.Error("failed to create run record", "error", err)
		}
		summary.RunID = runID
	}

	for i, candidate := range candidates {
		select {
		case <-ctx.Done():
			r.logger.Warn("Run interrupted", "remaining", len(candidates)-i)
			summary.AllFailures = state.FailedSlugs
			summary.ElapsedSeconds = time.Since(startTime).Seconds()
			return summary, ctx.Err()
		default:
		}

		s := slug.Normalize(candidate, r.cfg.RequiredPath)

		if state.IsProcessed(s) {
			r.logger.Info("Skipping - already processed", "slug", s)
			summary.Skipped++
			summary.Items = append(summary.Items, ItemResult{URL: candidate, Slug: s, Status: db.StatusSkipped})
			r.recordItem(runID, db.RunItem{RunID: runID, Slug: s, URL: candidate, Status: db.StatusSkipped})
			// Skipped items incur no delay: nothing was asked of the provider.
			continue
		}

		if r.cfg.DryRun {
			r.logger.Info("Pending (dry run)", "slug", s)
			summary.Pending++
			summary.Items = append(summary.Items, ItemResult{URL: candidate, Slug: s, Status: "pending"})
			continue
		}

		r.logger.Info("Processing", "slug", s, "url", candidate)

		path, genErr := r.generator.Generate(ctx, s)
		if genErr != nil {
			r.logger.Error("Failed to generate icon", "slug", s, "error", genErr)
			state.MarkFailed(s, genErr.Error())
			if err := r.store.Save(state); err != nil {
				return nil, err
			}
			summary.Failed++
			summary.Items = append(summary.Items, ItemResult{URL: candidate, Slug: s, Status: db.StatusFailed, Error: genErr.Error()})
			r.recordItem(runID, db.RunItem{RunID: runID, Slug: s, URL: candidate, Status: db.StatusFailed, ErrorMessage: genErr.Error()})
		} else {
			state.MarkProcessed(s)
			if err := r.store.Save(state); err != nil {
				return nil, err
			}
			r.logger.Info("Successfully generated icon", "slug", s, "path", path)
			summary.Processed++
			summary.Items = append(summary.Items, ItemResult{URL: candidate, Slug: s, Status: db.StatusSucceeded, FilePath: path})
			r.recordItem(runID, r.describeArtifact(db.RunItem{RunID: runID, Slug: s, URL: candidate, Status: db.StatusSucceeded, FilePath: path}))
		}

		// Rate-limiting courtesy toward the provider, after every attempt.
		if err := r.pause(ctx); err != nil {
			summary.AllFailures = state.FailedSlugs
			summary.ElapsedSeconds = time.Since(startTime).Seconds()
			return summary, err
		}
	}

	if r.database != nil && runID != 0 {
		if err := r.database.FinishRun(runID, summary.Processed, summary.Skipped, summary.Failed); err != nil {
			r.logger.Error("failed to finalize run record", "error", err)
		}
	}

	summary.AllFailures = state.FailedSlugs
	summary.ElapsedSeconds = time.Since(startTime).Seconds()
	return summary, nil
}

// pause waits out the fixed inter-item delay, or returns early if the run is
// cancelled. Interruption between items is safe: the checkpoint was flushed.
func (r *Runner) pause(ctx context.Context) error {
	if r.cfg.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(r.cfg.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) recordItem(runID int64, item db.RunItem) {
	if r.database == nil || runID == 0 || r.cfg.DryRun {
		return
	}
	if err := r.database.RecordItem(item); err != nil {
		r.logger.Error("failed to record run item", "slug", item.Slug, "error", err)
	}
}

// describeArtifact fills size and hash for a stored icon so the history DB
// can spot artifacts that changed between runs.
func (r *Runner) describeArtifact(item db.RunItem) db.RunItem {
	data, err := os.ReadFile(item.FilePath)
	if err != nil {
		return item
	}
	item.SizeBytes = int64(len(data))
	item.ContentHash = common.ContentHash(data)
	return item
}
