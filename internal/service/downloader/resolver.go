package downloader

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"go.uber.org/zap"
)

// sessionPathPattern extracts the protocol version and session id from a
// playback URL path, e.g.
// /playback/presentation/2.3/0123...89abcdef-1612345678901
var sessionPathPattern = regexp.MustCompile(`(?i)/?(\d+\.\d+)/.*?([0-9a-f]{40}-\d{13})/?`)

// Resolve parses a session playback URL into a SessionRef. It is a pure
// parse: nothing is created on disk. The session directory under rootDir is
// named wantedName when given, the session id otherwise.
func Resolve(rawURL, wantedName, rootDir string, logger *zap.Logger) (*domain.SessionRef, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSessionURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host in %q", domain.ErrInvalidSessionURL, rawURL)
	}

	matches := sessionPathPattern.FindStringSubmatch(u.Path)
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSessionURL, rawURL)
	}

	version := matches[1]
	sessionID := matches[2]
	logger.Info("resolved session URL",
		zap.String("protocol_version", version),
		zap.String("session_id", sessionID))

	dirName := wantedName
	if dirName == "" {
		dirName = sessionID
	}

	return &domain.SessionRef{
		ProtocolVersion: version,
		SessionID:       sessionID,
		RemoteBaseURL:   fmt.Sprintf("%s://%s/presentation/%s/", u.Scheme, u.Host, sessionID),
		LocalDir:        filepath.Join(rootDir, dirName),
	}, nil
}
