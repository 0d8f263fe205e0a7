package transcribe

import (
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
)

const (
	// DefaultMaxUploadMB is the Whisper API upload limit.
	DefaultMaxUploadMB = 25
	// DefaultSegmentDuration is the length of each piece of oversized audio.
	DefaultSegmentDuration = 10 * time.Minute
)

// Options tunes the size threshold and segment length.
type Options struct {
	MaxUploadMB     float64
	SegmentDuration time.Duration
}

type implTranscriber struct {
	backend  Backend
	splitter Splitter
	logger   logger.Logger
	metrics  *metrics.Metrics
	opts     Options
}

// New creates a Transcriber on top of backend. m may be nil.
func New(backend Backend, splitter Splitter, log logger.Logger, m *metrics.Metrics, opts Options) Transcriber {
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = DefaultMaxUploadMB
	}
	if opts.SegmentDuration <= 0 {
		opts.SegmentDuration = DefaultSegmentDuration
	}
	return &implTranscriber{
		backend:  backend,
		splitter: splitter,
		logger:   log,
		metrics:  m,
		opts:     opts,
	}
}
