package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"go.uber.org/zap"
)

// parsePresentations decodes a presentation text document into the ordered
// list of presentation elements and their slide counts. The element order
// is the document order of the keys, which is why this walks the token
// stream instead of unmarshalling into a map.
func parsePresentations(r io.Reader) ([]domain.Presentation, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var presentations []domain.Presentation
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read element key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected element key, got %v", keyTok)
		}

		// Only the entry count matters; entries themselves stay opaque.
		var entries []json.RawMessage
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode entries of %q: %w", key, err)
		}

		presentations = append(presentations, domain.Presentation{
			ID:         key,
			SlideCount: len(entries),
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read closing token: %w", err)
	}
	return presentations, nil
}

// expandSlides parses the downloaded presentation text document and fetches
// every slide and thumbnail it implies. A missing or malformed document is
// fatal: without it there is nothing meaningful left to expand. Individual
// image fetches get the same per-file isolation as the fixed manifest.
func (p *Pipeline) expandSlides(ctx context.Context, ref *domain.SessionRef) (domain.FetchStats, error) {
	var stats domain.FetchStats

	metaPath := filepath.Join(ref.LocalDir, domain.PresentationTextFilename)
	f, err := os.Open(metaPath)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	defer f.Close()

	presentations, err := parsePresentations(f)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}

	p.logger.Info("downloading presentations", zap.Int("count", len(presentations)))

	for _, pres := range presentations {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		elementDir := filepath.Join(ref.LocalDir, "presentation", pres.ID)
		if err := p.fs.EnsureDir(elementDir); err != nil {
			p.logger.Warn("failed to create presentation dir",
				zap.String("dir", elementDir), zap.Error(err))
		}

		p.logger.Info("downloading slides",
			zap.String("element", pres.ID),
			zap.Int("count", pres.SlideCount))
		for i := 1; i <= pres.SlideCount; i++ {
			rel := domain.SlidePath(pres.ID, i)
			stats.Record(p.fetchOne(ctx, ref, rel))
		}

		if err := p.fs.EnsureDir(filepath.Join(elementDir, "thumbnails")); err != nil {
			p.logger.Warn("failed to create thumbnails dir",
				zap.String("element", pres.ID), zap.Error(err))
		}

		p.logger.Info("downloading thumbnails",
			zap.String("element", pres.ID),
			zap.Int("count", pres.SlideCount))
		for i := 1; i <= pres.SlideCount; i++ {
			rel := domain.ThumbnailPath(pres.ID, i)
			stats.Record(p.fetchOne(ctx, ref, rel))
		}
	}

	return stats, nil
}
