package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vertextoedge/bbb-archive/internal/adapter/filesystem"
	"github.com/vertextoedge/bbb-archive/internal/adapter/httpfetch"
	"github.com/vertextoedge/bbb-archive/internal/adapter/sqlite"
	"github.com/vertextoedge/bbb-archive/internal/config"
	"github.com/vertextoedge/bbb-archive/internal/logger"
	"github.com/vertextoedge/bbb-archive/internal/service/combiner"
	"github.com/vertextoedge/bbb-archive/internal/service/downloader"
	"github.com/vertextoedge/bbb-archive/internal/service/library"
	"github.com/vertextoedge/bbb-archive/internal/service/server"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	downloadURL := flag.String("download", "", "Session URL to download, then exit")
	name := flag.String("name", "", "Directory name for the downloaded session (with -download)")
	combineDir := flag.String("combine", "", "Session directory to remux into one file, then exit")
	suffix := flag.String("suffix", "mp4", "Media suffix for -combine (mp4 or webm)")
	outName := flag.String("out", "", "Output name for -combine (without extension)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.L()
	log.Info("starting bbb-archive",
		zap.String("version", version),
		zap.String("config", *configPath))

	if *combineDir != "" {
		runCombine(cfg, *combineDir, *suffix, *outName, log)
		return
	}

	fsManager, err := filesystem.NewManager(cfg.Archive.RootDir)
	if err != nil {
		log.Fatal("failed to create meetings root", zap.Error(err))
	}

	fetcher := httpfetch.New(&httpfetch.Config{
		BufferSize:            cfg.Download.GetBufferSize(),
		SkipExisting:          cfg.Download.SkipExisting,
		ResponseHeaderTimeout: cfg.Download.GetResponseHeaderTimeout(),
		ProgressLogInterval:   cfg.Download.GetProgressLogInterval(),
	}, log)

	pipeline := downloader.New(fetcher, fsManager, log)

	if *downloadURL != "" {
		ref, err := pipeline.Download(context.Background(), *downloadURL, *name)
		if err != nil {
			log.Fatal("download failed", zap.Error(err))
		}
		if cfg.Archive.PlayerDir != "" && !library.HasModernPlayer(ref.LocalDir) {
			if err := library.InstallPlayer(cfg.Archive.PlayerDir, ref.LocalDir); err != nil {
				log.Warn("player install failed", zap.Error(err))
			}
		}
		return
	}

	runServe(cfg, fsManager, pipeline, log)
}

// runCombine remuxes an already-downloaded session and exits.
func runCombine(cfg *config.Config, sessionDir, suffix, outName string, log *zap.Logger) {
	if outName == "" {
		outName = cfg.Combine.OutputName
	}
	c := combiner.New(&combiner.Config{
		FFmpegPath: cfg.Combine.FFmpegPath,
		Format:     cfg.Combine.Format,
	}, log)
	if err := c.Combine(context.Background(), sessionDir, suffix, outName); err != nil {
		log.Fatal("combine failed", zap.Error(err))
	}
}

// runServe runs the web UI until interrupted.
func runServe(cfg *config.Config, fsManager *filesystem.Manager, pipeline *downloader.Pipeline, log *zap.Logger) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(fsManager.Root(), "archive.db")
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err), zap.String("path", dbPath))
	}
	defer store.Close()

	if err := library.EnsurePlayers(fsManager.Root(), cfg.Archive.PlayerDir, log); err != nil {
		log.Warn("player check failed", zap.Error(err))
	}

	srv := server.New(&server.Config{
		BindAddr:     cfg.HTTP.BindAddr,
		MeetingsDir:  fsManager.Root(),
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  cfg.HTTP.GetIdleTimeout(),
	}, store, pipeline, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("web UI started",
		zap.String("addr", cfg.HTTP.BindAddr),
		zap.String("meetings_dir", cfg.Archive.RootDir))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", zap.Error(err))
	}

	log.Info("stopped")
}
