package media

import (
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

// Config selects the binaries and scratch directory used by Media.
type Config struct {
	FFmpegPath   string
	FFprobePath  string
	TempDir      string
	AudioBitrate string
}

type implMedia struct {
	cfg      Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Media instance
func New(cfg Config, exec executor.Executor, log logger.Logger) Media {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if cfg.AudioBitrate == "" {
		cfg.AudioBitrate = "192k"
	}
	return &implMedia{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
