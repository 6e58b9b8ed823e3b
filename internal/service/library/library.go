package library

import (
	"os"
	"path/filepath"

	"github.com/vertextoedge/bbb-archive/internal/domain"
)

// Session is one downloaded (or partially downloaded) session directory
// under the meetings root.
type Session struct {
	// Name is the directory name (session id or user-chosen name)
	Name string

	// Complete reports whether the completion sentinel is present
	Complete bool

	// PlayerPath is the session-relative playback entry point
	PlayerPath string
}

// playerEntry returns the playback entry point for a session directory.
// Recordings made with the 2.3 player ship index.html plus
// asset-manifest.json; older 2.0 recordings use player/playback.html.
func playerEntry(dir string) string {
	if HasModernPlayer(dir) {
		return "index.html"
	}
	return "player/playback.html"
}

// HasModernPlayer reports whether dir contains a 2.3-era player bundle.
func HasModernPlayer(dir string) bool {
	if !fileExists(filepath.Join(dir, "index.html")) {
		return false
	}
	return fileExists(filepath.Join(dir, "asset-manifest.json"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// List enumerates session directories under root in lexicographic order.
// Non-directories are ignored.
func List(root string) ([]Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var sessions []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		sessions = append(sessions, Session{
			Name:       e.Name(),
			Complete:   fileExists(filepath.Join(dir, domain.SentinelFilename)),
			PlayerPath: playerEntry(dir),
		})
	}
	return sessions, nil
}
