package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Download DownloadConfig `mapstructure:"download"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Combine  CombineConfig  `mapstructure:"combine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ArchiveConfig describes the local meetings archive
type ArchiveConfig struct {
	// RootDir is the meetings root; each session gets one subdirectory
	RootDir string `mapstructure:"root_dir"`

	// PlayerDir optionally points at a 2.3 playback bundle that is copied
	// into session directories lacking a modern player
	PlayerDir string `mapstructure:"player_dir"`
}

// DownloadConfig contains fetch settings
type DownloadConfig struct {
	// SkipExisting skips fetches whose destination already exists non-empty.
	// Off by default: a missing sentinel re-fetches everything, which also
	// repairs files truncated by an interrupted run.
	SkipExisting bool `mapstructure:"skip_existing"`

	BufferSizeMB          int    `mapstructure:"buffer_size_mb"`
	ResponseHeaderTimeout string `mapstructure:"response_header_timeout"`

	// ProgressLogInterval throttles transfer progress log lines
	ProgressLogInterval string `mapstructure:"progress_log_interval"`
}

// HTTPConfig contains the local web UI server configuration
type HTTPConfig struct {
	BindAddr     string `mapstructure:"bind_addr"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

// CombineConfig contains media remux settings
type CombineConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	Format     string `mapstructure:"format"`
	OutputName string `mapstructure:"output_name"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains task history database settings
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from the specified file path. A missing config
// file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("archive.root_dir", "downloadedMeetings")
	viper.SetDefault("archive.player_dir", "")
	viper.SetDefault("download.skip_existing", false)
	viper.SetDefault("download.buffer_size_mb", 1)
	viper.SetDefault("download.response_header_timeout", "30s")
	viper.SetDefault("download.progress_log_interval", "1s")
	viper.SetDefault("http.bind_addr", "0.0.0.0:5000")
	viper.SetDefault("http.read_timeout", "30s")
	viper.SetDefault("http.write_timeout", "10m")
	viper.SetDefault("http.idle_timeout", "60s")
	viper.SetDefault("combine.ffmpeg_path", "ffmpeg")
	viper.SetDefault("combine.format", "mkv")
	viper.SetDefault("combine.output_name", "combine-output")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("database.path", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Archive.RootDir == "" {
		return fmt.Errorf("archive.root_dir is required")
	}

	if c.Download.BufferSizeMB <= 0 {
		return fmt.Errorf("download.buffer_size_mb must be positive")
	}
	if _, err := time.ParseDuration(c.Download.ResponseHeaderTimeout); err != nil {
		return fmt.Errorf("invalid download.response_header_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Download.ProgressLogInterval); err != nil {
		return fmt.Errorf("invalid download.progress_log_interval: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetBufferSize returns the download copy buffer size in bytes
func (c *DownloadConfig) GetBufferSize() int {
	if c.BufferSizeMB <= 0 {
		return 1024 * 1024
	}
	return c.BufferSizeMB * 1024 * 1024
}

// GetResponseHeaderTimeout returns the response header timeout as time.Duration
func (c *DownloadConfig) GetResponseHeaderTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ResponseHeaderTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetProgressLogInterval returns the progress log throttle as time.Duration
func (c *DownloadConfig) GetProgressLogInterval() time.Duration {
	d, _ := time.ParseDuration(c.ProgressLogInterval)
	if d == 0 {
		return time.Second
	}
	return d
}

// GetReadTimeout returns the read timeout as time.Duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as time.Duration.
// Downloads triggered from the web form run inside the request, so the
// default is generous.
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	if d == 0 {
		return 10 * time.Minute
	}
	return d
}

// GetIdleTimeout returns the idle timeout as time.Duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	if d == 0 {
		return 60 * time.Second
	}
	return d
}
