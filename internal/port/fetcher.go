package port

import (
	"context"

	"github.com/vertextoedge/bbb-archive/internal/domain"
)

// Fetcher retrieves one remote asset to a local path.
//
// The returned Outcome classifies the attempt; the error carries diagnostic
// detail for OutcomeFailed and is nil otherwise. Implementations must not
// treat a missing remote file (404) as an error: the caller decides whether
// a gap matters.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) (domain.Outcome, error)
}

// SessionDownloader runs the full download pipeline for one session URL.
type SessionDownloader interface {
	Download(ctx context.Context, rawURL, wantedName string) (*domain.SessionRef, error)
}
