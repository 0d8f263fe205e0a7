package video

import (
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

// Config holds the yt-dlp settings.
type Config struct {
	YtDlpPath string
	TempDir   string
	Format    string
}

type implAcquirer struct {
	cfg      Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Acquirer that downloads with yt-dlp into cfg.TempDir.
func New(cfg Config, exec executor.Executor, log logger.Logger) Acquirer {
	if cfg.YtDlpPath == "" {
		cfg.YtDlpPath = "yt-dlp"
	}
	if cfg.TempDir == "" {
		cfg.TempDir = "./temp"
	}
	if cfg.Format == "" {
		cfg.Format = "best[ext=mp4]/best"
	}
	return &implAcquirer{cfg: cfg, executor: exec, logger: log}
}
