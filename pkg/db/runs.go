package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run represents one batch invocation.
type Run struct {
	RunID          int64
	RunUUID        string
	CreatedAt      time.Time
	SitemapURL     string
	CandidateCount int
	ProcessedCount int
	SkippedCount   int
	FailedCount    int
	OutputDir      string
}

// RunItem is the recorded outcome for one candidate within a run.
type RunItem struct {
	ItemID       int64
	RunID        int64
	Slug         string
	URL          string
	Status       string
	ErrorMessage string
	FilePath     string
	SizeBytes    int64
	ContentHash  string
	CreatedAt    time.Time
}

// Item statuses. The history DB is observational; skip/retry decisions key on
// the checkpoint file, never on these rows.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// CreateRun inserts a new run row and returns its ID.
func (db *DB) CreateRun(sitemapURL string, candidateCount int, outputDir string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (run_uuid, sitemap_url, candidate_count, output_dir)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), sitemapURL, candidateCount, outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordItem inserts one per-item outcome row.
func (db *DB) RecordItem(item RunItem) error {
	_, err := db.Exec(`
		INSERT INTO run_items (run_id, slug, url, status, error_message, file_path, size_bytes, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, item.RunID, item.Slug, item.URL, item.Status, item.ErrorMessage, item.FilePath, item.SizeBytes, item.ContentHash)
	if err != nil {
		return fmt.Errorf("failed to record run item: %w", err)
	}
	return nil
}

// FinishRun stores the final counters for a run.
func (db *DB) FinishRun(runID int64, processed, skipped, failed int) error {
	_, err := db.Exec(`
		UPDATE runs SET processed_count = ?, skipped_count = ?, failed_count = ?
		WHERE run_id = ?
	`, processed, skipped, failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetRunByID returns a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run := &Run{}
	err := db.QueryRow(`
		SELECT run_id, run_uuid, created_at, sitemap_url, candidate_count,
		       processed_count, skipped_count, failed_count, output_dir
		FROM runs WHERE run_id = ?
	`, runID).Scan(
		&run.RunID, &run.RunUUID, &run.CreatedAt, &run.SitemapURL, &run.CandidateCount,
		&run.ProcessedCount, &run.SkippedCount, &run.FailedCount, &run.OutputDir,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetLatestRunID returns the most recently created run's ID.
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow(`SELECT run_id FROM runs ORDER BY created_at DESC, run_id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("no runs recorded yet")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, run_uuid, created_at, sitemap_url, candidate_count,
		       processed_count, skipped_count, failed_count, output_dir
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.RunID, &run.RunUUID, &run.CreatedAt, &run.SitemapURL, &run.CandidateCount,
			&run.ProcessedCount, &run.SkippedCount, &run.FailedCount, &run.OutputDir,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunItems returns all items recorded for a run in insertion order.
func (db *DB) GetRunItems(runID int64) ([]RunItem, error) {
	rows, err := db.Query(`
		SELECT item_id, run_id, slug, url, status,
		       COALESCE(error_message, ''), COALESCE(file_path, ''),
		       COALESCE(size_bytes, 0), COALESCE(content_hash, ''), created_at
		FROM run_items WHERE run_id = ? ORDER BY item_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run items: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var item RunItem
		if err := rows.Scan(
			&item.ItemID, &item.RunID, &item.Slug, &item.URL, &item.Status,
			&item.ErrorMessage, &item.FilePath, &item.SizeBytes, &item.ContentHash, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
