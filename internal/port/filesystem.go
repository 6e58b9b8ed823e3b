package port

// ArchiveFS owns the on-disk layout of the meetings root: per-session
// directory trees, destination path mapping, and the completion sentinel.
type ArchiveFS interface {
	// Root returns the meetings root directory
	Root() string

	// SessionDir returns the directory for a session name or id
	SessionDir(name string) string

	// AssetPath maps a session-relative asset path (slash-separated) to a
	// local filesystem path inside dir
	AssetPath(dir, relPath string) string

	// EnsureSessionLayout creates dir and its fixed subdirectories.
	// Pre-existing directories are not an error.
	EnsureSessionLayout(dir string) error

	// EnsureDir creates one directory (and parents), idempotently
	EnsureDir(path string) error

	// HasSentinel reports whether dir contains the completion sentinel
	HasSentinel(dir string) bool

	// WriteSentinel writes the zero-byte completion sentinel in dir
	WriteSentinel(dir string) error
}
