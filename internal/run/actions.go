package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dtnitsch/sitemap-icons/models"
	"github.com/dtnitsch/sitemap-icons/pkg/artifacts"
	"github.com/dtnitsch/sitemap-icons/pkg/checkpoint"
	"github.com/dtnitsch/sitemap-icons/pkg/db"
	"github.com/dtnitsch/sitemap-icons/pkg/fetcher"
	"github.com/dtnitsch/sitemap-icons/pkg/imagegen"
	"github.com/dtnitsch/sitemap-icons/pkg/sitemap"
	"github.com/dtnitsch/sitemap-icons/pkg/thumbnail"
	"github.com/urfave/cli/v2"
)

// RunAction is the entrypoint for the `run` command.
func RunAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config := &models.RunConfig{
		SitemapURL:    c.String("sitemap"),
		RequiredPath:  c.String("required-path"),
		ExcludedPaths: splitList(c.String("exclude")),
		OutputDir:     c.String("output-dir"),
		StateFile:     c.String("state-file"),
		Delay:         c.Duration("delay"),
		APIKey:        c.String("api-key"),
		Model:         c.String("model"),
		DryRun:        c.Bool("dry-run"),
	}

	// The credential check happens before any work: no key, no run.
	if config.APIKey == "" && !config.DryRun {
		fmt.Fprintln(os.Stderr, "Error: Gemini API key not found")
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY in the environment or pass --api-key")
		os.Exit(1)
	}

	// Interruption between items is expected; SIGINT/SIGTERM stop the loop at
	// the next item boundary with the checkpoint already flushed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := artifacts.NewManager(config.OutputDir)
	if err != nil {
		logger.Error("failed to initialize output directory", "error", err)
		os.Exit(2)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open run-history database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	f := fetcher.NewFetcher()

	var generator Generator
	if !config.DryRun {
		provider, err := imagegen.NewGeminiProvider(ctx, logger, config.APIKey, config.Model)
		if err != nil {
			logger.Error("failed to initialize image provider", "error", err)
			os.Exit(1)
		}
		generator = imagegen.NewAdapter(logger, provider, f, manager, thumbnail.DefaultSize)
	}

	candidates := sitemap.Fetch(f, config.SitemapURL, config.RequiredPath, config.ExcludedPaths, logger)
	logger.Info("Sitemap fetched", "candidate_count", len(candidates), "sitemap", config.SitemapURL)

	store := checkpoint.NewStore(config.StateFile)
	runner := NewRunner(logger, config, store, generator, database)

	summary, runErr := runner.Run(ctx, candidates)
	if summary != nil {
		summary.Print(os.Stdout)
		if !config.DryRun && summary.Candidates > 0 {
			if path, err := summary.WriteYAML(manager.BaseDir()); err != nil {
				logger.Error("failed to write run summary", "error", err)
			} else {
				logger.Info("Run summary written", "path", path)
			}
		}
	}
	if runErr != nil {
		logger.Error("run aborted", "error", runErr)
		os.Exit(2)
	}

	return nil
}

// StateAction prints the checkpoint contents: how many slugs are done and
// every failure recorded across all runs.
func StateAction(c *cli.Context) error {
	store := checkpoint.NewStore(c.String("state-file"))
	state, err := store.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Checkpoint: %s\n", store.Path)
	fmt.Printf("Processed slugs: %d\n", len(state.ProcessedSlugs))
	fmt.Printf("Recorded failures: %d\n", len(state.FailedSlugs))

	if len(state.FailedSlugs) > 0 {
		fmt.Println("\nFailed generations:")
		for _, f := range state.FailedSlugs {
			fmt.Printf("- %s: %s\n", f.Slug, f.Error)
		}
	}

	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
