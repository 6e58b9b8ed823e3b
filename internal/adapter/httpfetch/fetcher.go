package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vertextoedge/bbb-archive/internal/domain"
	"github.com/vertextoedge/bbb-archive/internal/port"
	"github.com/vertextoedge/bbb-archive/internal/util/ratelimiter"
	"go.uber.org/zap"
)

// Config contains optional fetcher configuration
type Config struct {
	// BufferSize is the copy buffer size in bytes (default 1MB)
	BufferSize int

	// SkipExisting skips fetches whose destination already exists non-empty
	SkipExisting bool

	// ResponseHeaderTimeout bounds the wait for response headers; the body
	// transfer itself has no total timeout (large media files)
	ResponseHeaderTimeout time.Duration

	// ProgressLogInterval throttles per-transfer progress log lines
	ProgressLogInterval time.Duration
}

// Fetcher downloads single assets over HTTP, streaming the body to a
// temporary file that is renamed into place on success.
type Fetcher struct {
	client       *http.Client
	bufferSize   int
	skipExisting bool
	progressEach time.Duration
	logger       *zap.Logger
}

// Ensure Fetcher implements port.Fetcher
var _ port.Fetcher = (*Fetcher)(nil)

// New creates an HTTP fetcher.
func New(cfg *Config, logger *zap.Logger) *Fetcher {
	if cfg == nil {
		cfg = &Config{}
	}
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 1024 * 1024
	}
	headerTimeout := cfg.ResponseHeaderTimeout
	if headerTimeout == 0 {
		headerTimeout = 30 * time.Second
	}
	progressEach := cfg.ProgressLogInterval
	if progressEach == 0 {
		progressEach = time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
		DisableCompression:    true,
		ResponseHeaderTimeout: headerTimeout,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   0, // no total timeout: media transfers can be long
		},
		bufferSize:   bufferSize,
		skipExisting: cfg.SkipExisting,
		progressEach: progressEach,
		logger:       logger,
	}
}

// Fetch downloads url to destPath. A 404 response is OutcomeNotFound, any
// other transport or write problem is OutcomeFailed with the error carrying
// diagnostic detail. Existing files at destPath are overwritten.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) (domain.Outcome, error) {
	if f.skipExisting {
		if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
			return domain.OutcomeSkipped, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.OutcomeNotFound, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return domain.OutcomeFailed, fmt.Errorf("request %s: unexpected status %s", url, resp.Status)
	}

	written, err := f.writeBody(destPath, resp.Body, resp.ContentLength)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("write %s: %w", destPath, err)
	}

	f.logger.Debug("asset fetched",
		zap.String("url", url),
		zap.String("dest", destPath),
		zap.Int64("bytes", written))
	return domain.OutcomeSuccess, nil
}

// writeBody streams body to destPath via a temp file renamed into place.
func (f *Fetcher) writeBody(destPath string, body io.Reader, total int64) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("create parent dir: %w", err)
	}

	tempPath := destPath + ".downloading"
	out, err := os.Create(tempPath)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	reader := &progressReader{
		reader:  body,
		total:   total,
		dest:    destPath,
		limiter: ratelimiter.New(f.progressEach),
		logger:  f.logger,
	}

	buf := make([]byte, f.bufferSize)
	written, err := io.CopyBuffer(out, reader, buf)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return written, err
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return written, fmt.Errorf("rename into place: %w", err)
	}
	return written, nil
}

// progressReader wraps a response body to log throttled transfer progress
type progressReader struct {
	reader    io.Reader
	total     int64
	dest      string
	bytesRead int64
	limiter   *ratelimiter.Limiter
	logger    *zap.Logger
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)

	if allowed, _ := r.limiter.Allow(); allowed {
		r.logger.Debug("transfer progress",
			zap.String("dest", r.dest),
			zap.Int64("bytes", r.bytesRead),
			zap.Int64("total", r.total))
	}

	return n, err
}
