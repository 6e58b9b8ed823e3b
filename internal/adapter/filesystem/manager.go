package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"github.com/vertextoedge/bbb-archive/internal/port"
)

// sessionSubdirs are created inside every session directory before any
// fetch runs. The expander adds per-presentation directories later.
var sessionSubdirs = []string{"video", "deskshare", "presentation"}

// Manager handles the on-disk layout of the meetings root.
type Manager struct {
	rootDir string
}

// Ensure Manager implements port.ArchiveFS
var _ port.ArchiveFS = (*Manager)(nil)

// NewManager creates a filesystem manager rooted at rootDir, creating the
// root if needed.
func NewManager(rootDir string) (*Manager, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create meetings root: %w", err)
	}
	return &Manager{rootDir: rootDir}, nil
}

// Root returns the meetings root directory.
func (m *Manager) Root() string {
	return m.rootDir
}

// SessionDir returns the directory for a session name or id.
func (m *Manager) SessionDir(name string) string {
	return filepath.Join(m.rootDir, name)
}

// AssetPath maps a session-relative asset path to a local path inside dir.
func (m *Manager) AssetPath(dir, relPath string) string {
	return filepath.Join(dir, filepath.FromSlash(relPath))
}

// EnsureSessionLayout creates the session directory and its fixed
// subdirectories. Pre-existing directories are not an error. All entries
// are attempted even if one fails; the first failure is returned.
func (m *Manager) EnsureSessionLayout(dir string) error {
	var firstErr error
	if err := os.MkdirAll(dir, 0755); err != nil {
		firstErr = err
	}
	for _, sub := range sessionSubdirs {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// EnsureDir creates one directory and its parents, idempotently.
func (m *Manager) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// HasSentinel reports whether dir contains the completion sentinel.
func (m *Manager) HasSentinel(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, domain.SentinelFilename))
	return err == nil && !info.IsDir()
}

// WriteSentinel writes the zero-byte completion sentinel in dir. This is
// the pipeline's only durable state transition.
func (m *Manager) WriteSentinel(dir string) error {
	f, err := os.Create(filepath.Join(dir, domain.SentinelFilename))
	if err != nil {
		return fmt.Errorf("failed to write sentinel: %w", err)
	}
	return f.Close()
}
