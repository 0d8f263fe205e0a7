package processor

import (
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/events"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
	"github.com/nguyentantai21042004/yt-summarize/internal/output"
	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/transcribe"
	"github.com/nguyentantai21042004/yt-summarize/internal/video"
)

const lockFileName = ".yt-summarize.lock"

// Config holds the processor settings.
type Config struct {
	TempDir     string
	AudioFormat string
}

// Deps are the pipeline collaborators. Publisher, Synthesizer, and Metrics
// may be nil.
type Deps struct {
	Acquirer    video.Acquirer
	Media       media.Media
	Transcriber transcribe.Transcriber
	Summarizer  summarizer.Summarizer
	Writer      output.Writer
	Synthesizer output.Synthesizer
	Publisher   events.Publisher
	Metrics     *metrics.Metrics
	Logger      logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type implProcessor struct {
	cfg         Config
	acquirer    video.Acquirer
	media       media.Media
	transcriber transcribe.Transcriber
	summarizer  summarizer.Summarizer
	writer      output.Writer
	synthesizer output.Synthesizer
	publisher   events.Publisher
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// New creates a new Processor instance
func New(cfg Config, deps Deps) Processor {
	if cfg.AudioFormat == "" {
		cfg.AudioFormat = "mp3"
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &implProcessor{
		cfg:         cfg,
		acquirer:    deps.Acquirer,
		media:       deps.Media,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		writer:      deps.Writer,
		synthesizer: deps.Synthesizer,
		publisher:   deps.Publisher,
		metrics:     deps.Metrics,
		logger:      log,
		now:         now,
	}
}
