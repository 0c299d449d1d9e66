package run

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtnitsch/sitemap-icons/pkg/checkpoint"
	"gopkg.in/yaml.v3"
)

// ItemResult is the observed outcome for one candidate in this run.
type ItemResult struct {
	URL      string `yaml:"url"`
	Slug     string `yaml:"slug"`
	Status   string `yaml:"status"`
	FilePath string `yaml:"file_path,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// Summary is produced at the end of every run. It is purely observational:
// nothing in it feeds back into the persisted checkpoint.
type Summary struct {
	RunID          int64        `yaml:"run_id,omitempty"`
	Candidates     int          `yaml:"candidates"`
	Processed      int          `yaml:"processed"`
	Skipped        int          `yaml:"skipped"`
	Failed         int          `yaml:"failed"`
	Pending        int          `yaml:"pending,omitempty"`
	ElapsedSeconds float64      `yaml:"elapsed_seconds"`
	Items          []ItemResult `yaml:"items"`

	// AllFailures enumerates every failure recorded across all runs, from the
	// checkpoint, so a human can decide what to rerun.
	AllFailures []checkpoint.Failure `yaml:"all_failures"`
}

// Print writes the human-readable end-of-run report.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "Icon generation completed!")
	fmt.Fprintf(w, "Candidates: %d  Processed: %d  Skipped: %d  Failed: %d\n",
		s.Candidates, s.Processed, s.Skipped, s.Failed)
	if s.Pending > 0 {
		fmt.Fprintf(w, "Pending (dry run): %d\n", s.Pending)
	}

	if len(s.AllFailures) == 0 {
		return
	}
	fmt.Fprintln(w, "\nFailed generations:")
	for _, f := range s.AllFailures {
		fmt.Fprintf(w, "- %s: %s\n", f.Slug, f.Error)
	}
}

// WriteYAML writes the machine-readable run summary next to the icons.
func (s *Summary) WriteYAML(outputDir string) (string, error) {
	outputPath := filepath.Join(outputDir, "run-summary.yaml")

	yamlBytes, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}

	if err := os.WriteFile(outputPath, yamlBytes, 0600); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return outputPath, nil
}
