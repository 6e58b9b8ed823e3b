package downloader

import (
	"context"
	"fmt"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"github.com/vertextoedge/bbb-archive/internal/port"
	"go.uber.org/zap"
)

// Pipeline downloads one recorded session: resolve the URL, provision the
// directory tree, fetch the fixed manifest, expand slides and thumbnails
// from the presentation metadata, and mark completion with the sentinel.
//
// Fetches run strictly sequentially in declared order. A single asset's
// failure never aborts the run; only a malformed URL or unusable metadata
// document is fatal.
type Pipeline struct {
	fetcher port.Fetcher
	fs      port.ArchiveFS
	logger  *zap.Logger
}

// Ensure Pipeline implements port.SessionDownloader
var _ port.SessionDownloader = (*Pipeline)(nil)

// New creates a download pipeline.
func New(fetcher port.Fetcher, fs port.ArchiveFS, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		fs:      fs,
		logger:  logger,
	}
}

// Download runs the whole pipeline for one session URL. When the session
// directory already carries the completion sentinel the call returns
// immediately without any remote request. Otherwise every phase is re-run
// from the start, overwriting whatever a previous interrupted run left
// behind.
func (p *Pipeline) Download(ctx context.Context, rawURL, wantedName string) (*domain.SessionRef, error) {
	ref, err := Resolve(rawURL, wantedName, p.fs.Root(), p.logger)
	if err != nil {
		return nil, err
	}

	if p.fs.HasSentinel(ref.LocalDir) {
		p.logger.Info("session already downloaded",
			zap.String("session_id", ref.SessionID),
			zap.String("dir", ref.LocalDir))
		return ref, nil
	}

	if err := p.fs.EnsureSessionLayout(ref.LocalDir); err != nil {
		// Non-fatal: real problems surface as fetch failures below.
		p.logger.Warn("failed to provision session layout",
			zap.String("dir", ref.LocalDir), zap.Error(err))
	}

	stats, err := p.fetchManifest(ctx, ref)
	if err != nil {
		return ref, err
	}

	expandStats, err := p.expandSlides(ctx, ref)
	stats.Add(expandStats)
	if err != nil {
		return ref, err
	}

	if err := p.fs.WriteSentinel(ref.LocalDir); err != nil {
		return ref, fmt.Errorf("failed to mark session complete: %w", err)
	}

	p.logger.Info("session downloaded",
		zap.String("session_id", ref.SessionID),
		zap.String("dir", ref.LocalDir),
		zap.Int("fetched", stats.Success),
		zap.Int("missing", stats.NotFound),
		zap.Int("failed", stats.Failed),
		zap.Int("skipped", stats.Skipped))
	return ref, nil
}

// fetchManifest downloads the fixed manifest in declared order. Gaps are
// normal: not every session has deskshare video or captions.
func (p *Pipeline) fetchManifest(ctx context.Context, ref *domain.SessionRef) (domain.FetchStats, error) {
	var stats domain.FetchStats

	manifest := domain.FixedManifest()
	for i, rel := range manifest {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		p.logger.Info(fmt.Sprintf("[%d/%d] downloading %s", i+1, len(manifest), rel))
		stats.Record(p.fetchOne(ctx, ref, rel))
	}
	return stats, nil
}

// fetchOne fetches a single session-relative asset and classifies the
// outcome. Failures are logged here and reported as values; they never
// escape to the caller.
func (p *Pipeline) fetchOne(ctx context.Context, ref *domain.SessionRef, relPath string) domain.Outcome {
	url := ref.AssetURL(relPath)
	dest := p.fs.AssetPath(ref.LocalDir, relPath)

	outcome, err := p.fetcher.Fetch(ctx, url, dest)
	switch outcome {
	case domain.OutcomeNotFound:
		p.logger.Warn("asset not found on server", zap.String("path", relPath))
	case domain.OutcomeFailed:
		p.logger.Error("asset download failed",
			zap.String("path", relPath),
			zap.String("url", url),
			zap.Error(err))
	case domain.OutcomeSkipped:
		p.logger.Debug("asset already present, skipping", zap.String("path", relPath))
	}
	return outcome
}
