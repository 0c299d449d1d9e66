// Package checkpoint owns the durable record of processed and failed slugs.
// The state is loaded once at the start of a run and fully rewritten after
// every attempted item, so an interrupted batch loses at most the item that
// was in flight.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultStateFile is where the checkpoint lives unless overridden.
const DefaultStateFile = "generation_state.json"

// Failure records one failed generation attempt. The same slug may appear
// more than once if it was retried on a later run and failed again.
type Failure struct {
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

// State is the sole persisted entity. ProcessedSlugs is semantically a set;
// the slice preserves completion order and the on-disk JSON shape.
type State struct {
	ProcessedSlugs []string  `json:"processed_slugs"`
	FailedSlugs    []Failure `json:"failed_slugs"`

	processed map[string]bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		ProcessedSlugs: []string{},
		FailedSlugs:    []Failure{},
		processed:      make(map[string]bool),
	}
}

// IsProcessed reports whether a slug has already been completed successfully.
func (s *State) IsProcessed(slug string) bool {
	return s.processed[slug]
}

// MarkProcessed records a successful completion. Marking an already-processed
// slug is a no-op, preserving the no-duplicates invariant.
func (s *State) MarkProcessed(slug string) {
	if s.processed[slug] {
		return
	}
	s.processed[slug] = true
	s.ProcessedSlugs = append(s.ProcessedSlugs, slug)
}

// MarkFailed appends a failure record. Failures never count as processed, so
// a rerun will re-attempt the slug.
func (s *State) MarkFailed(slug, errDesc string) {
	s.FailedSlugs = append(s.FailedSlugs, Failure{Slug: slug, Error: errDesc})
}

func (s *State) rebuildIndex() {
	s.processed = make(map[string]bool, len(s.ProcessedSlugs))
	for _, slug := range s.ProcessedSlugs {
		s.processed[slug] = true
	}
}

// Store persists State as a single JSON document at Path.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the checkpoint file. A missing file means no prior progress and
// yields a fresh empty state. An existing but unreadable or unparsable file
// is returned as an error: silently discarding it would lose the record of
// all prior progress.
func (st *Store) Load() (*State, error) {
	data, err := os.ReadFile(st.Path)
	if errors.Is(err, os.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", st.Path, err)
	}

	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("checkpoint %s is corrupt (refusing to discard it): %w", st.Path, err)
	}
	if state.ProcessedSlugs == nil {
		state.ProcessedSlugs = []string{}
	}
	if state.FailedSlugs == nil {
		state.FailedSlugs = []Failure{}
	}
	state.rebuildIndex()
	return state, nil
}

// Save rewrites the full state. It must be called synchronously after every
// attempted item; a write failure is fatal to the run, because without a
// durable record the item would be reprocessed on resume.
func (st *Store) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	if err := os.WriteFile(st.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", st.Path, err)
	}
	return nil
}
