package combiner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// Config contains remux settings
type Config struct {
	// FFmpegPath is the ffmpeg binary to invoke (default "ffmpeg")
	FFmpegPath string

	// Format is the container format of the combined file (default "mkv")
	Format string
}

// DefaultConfig returns default combiner configuration
func DefaultConfig() *Config {
	return &Config{
		FFmpegPath: "ffmpeg",
		Format:     "mkv",
	}
}

// Combiner remuxes a session's deskshare video and webcam audio into one
// playable file with stream copy. It is not on the download critical path.
type Combiner struct {
	config *Config
	logger *zap.Logger
}

// New creates a Combiner.
func New(cfg *Config, logger *zap.Logger) *Combiner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.Format == "" {
		cfg.Format = "mkv"
	}
	return &Combiner{config: cfg, logger: logger}
}

// Combine remuxes deskshare/deskshare.<suffix> and video/webcams.<suffix>
// inside sessionDir into outName.<format>. Both inputs must exist.
func (c *Combiner) Combine(ctx context.Context, sessionDir, suffix, outName string) error {
	videoIn := filepath.Join(sessionDir, "deskshare", "deskshare."+suffix)
	audioIn := filepath.Join(sessionDir, "video", "webcams."+suffix)

	for _, in := range []string{videoIn, audioIn} {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("input not available: %w", err)
		}
	}

	outPath := filepath.Join(sessionDir, outName+"."+c.config.Format)
	args := buildArgs(videoIn, audioIn, outPath)

	c.logger.Info("combining media",
		zap.String("video", videoIn),
		zap.String("audio", audioIn),
		zap.String("output", outPath))

	cmd := exec.CommandContext(ctx, c.config.FFmpegPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// buildArgs assembles the ffmpeg invocation: video stream from the first
// input, audio stream from the second, no re-encode.
func buildArgs(videoIn, audioIn, outPath string) []string {
	return []string{
		"-y",
		"-i", videoIn,
		"-i", audioIn,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c", "copy",
		outPath,
	}
}
