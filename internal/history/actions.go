// Package history implements the run-history CLI commands backed by the
// local sqlite database.
package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/sitemap-icons/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recent runs in a table format.
func RunsAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-10s %-10s %-8s %-8s %-30s\n",
		"ID", "Created", "Candidates", "Processed", "Skipped", "Failed", "Sitemap")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-10d %-10d %-8d %-8d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.CandidateCount,
			r.ProcessedCount,
			r.SkippedCount,
			r.FailedCount,
			r.SitemapURL,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'sitemap-icons run-info <id>' to see per-item details\n")

	return nil
}

// RunInfoAction shows per-item details for a specific run (or the latest).
func RunInfoAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	items, err := database.GetRunItems(runID)
	if err != nil {
		return fmt.Errorf("failed to get run items: %w", err)
	}

	fmt.Printf("Run %d (%s)\n", run.RunID, run.RunUUID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:    %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Sitemap:    %s\n", run.SitemapURL)
	fmt.Printf("Output dir: %s\n", run.OutputDir)
	fmt.Printf("Candidates: %d  Processed: %d  Skipped: %d  Failed: %d\n",
		run.CandidateCount, run.ProcessedCount, run.SkippedCount, run.FailedCount)

	if len(items) == 0 {
		fmt.Println("\nNo items recorded for this run")
		return nil
	}

	fmt.Printf("\n%-30s %-10s %-12s %-40s\n", "Slug", "Status", "Size", "Detail")
	fmt.Println(strings.Repeat("-", 100))
	for _, item := range items {
		detail := item.FilePath
		if item.Status == db.StatusFailed {
			detail = item.ErrorMessage
		}
		size := ""
		if item.SizeBytes > 0 {
			size = fmt.Sprintf("%d B", item.SizeBytes)
		}
		fmt.Printf("%-30s %-10s %-12s %-40s\n", item.Slug, item.Status, size, detail)
	}

	return nil
}

// runIDOrLatest resolves the run ID argument, defaulting to the newest run.
func runIDOrLatest(c *cli.Context, database *db.DB) (int64, error) {
	if c.Args().Len() == 0 {
		return database.GetLatestRunID()
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID %q: %w", c.Args().First(), err)
	}
	return runID, nil
}
