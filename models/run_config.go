// Package models defines data structures for configuration shared across commands.
package models

import "time"

// RunConfig holds runtime configuration for a generation run.
// All values come from CLI flags and the environment, not external config files.
type RunConfig struct {
	SitemapURL    string
	RequiredPath  string
	ExcludedPaths []string
	OutputDir     string
	StateFile     string
	Delay         time.Duration
	APIKey        string
	Model         string
	DryRun        bool
}
