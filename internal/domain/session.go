package domain

// SentinelFilename marks a session directory whose download pipeline ran to
// completion. The file is empty; only its presence matters.
const SentinelFilename = "rec_fully_downloaded.txt"

// PresentationTextFilename is the metadata document that drives slide and
// thumbnail expansion. It is part of the fixed manifest and must parse for
// the expansion phase to run.
const PresentationTextFilename = "presentation_text.json"

// SessionRef identifies one remote recording and its local mirror.
// It is created once per invocation by the resolver and never mutated.
type SessionRef struct {
	// ProtocolVersion is the playback protocol tag from the URL path (e.g. "2.3")
	ProtocolVersion string

	// SessionID is the 40-hex-char recording id plus "-" and a 13-digit timestamp
	SessionID string

	// RemoteBaseURL is "scheme://host/presentation/<SessionID>/", always slash-terminated
	RemoteBaseURL string

	// LocalDir is the session directory under the meetings root
	LocalDir string
}

// AssetURL returns the remote URL for a manifest-relative path.
func (r *SessionRef) AssetURL(relPath string) string {
	return r.RemoteBaseURL + relPath
}
