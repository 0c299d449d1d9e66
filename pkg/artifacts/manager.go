// Package artifacts handles storage of generated icon files.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/sitemap-icons/pkg/slug"
	"github.com/dtnitsch/sitemap-icons/pkg/storage"
)

const DefaultBaseDir = "generated_icons"

// Manager owns the output directory. Icons are deterministically named from
// their slug and overwritten if a slug is ever regenerated.
type Manager struct {
	baseDir string
	store   *storage.Storage
}

// NewManager creates a Manager and ensures the output directory exists.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{baseDir: baseDir, store: &storage.Storage{}}, nil
}

func (m *Manager) BaseDir() string {
	return m.baseDir
}

// IconPath returns the full path an icon for the given slug is written to.
func (m *Manager) IconPath(s string) string {
	return filepath.Join(m.baseDir, slug.Filename(s))
}

// WriteIcon persists fully-encoded PNG bytes for a slug in a single write and
// returns the stored path.
func (m *Manager) WriteIcon(s string, png []byte) (string, error) {
	path := m.IconPath(s)
	if err := m.store.SaveFile(path, png); err != nil {
		return "", err
	}
	return path, nil
}

// HasIcon reports whether an icon for the slug already exists on disk.
func (m *Manager) HasIcon(s string) bool {
	return m.store.HasFile(m.IconPath(s))
}
