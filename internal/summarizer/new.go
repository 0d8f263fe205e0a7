package summarizer

import (
	"github.com/nguyentantai21042004/yt-summarize/internal/llm"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
)

const (
	DefaultModel                = "gpt-4-turbo-preview"
	DefaultFallbackModel        = "gpt-3.5-turbo-16k"
	DefaultTemperature          = 0.7
	DefaultMaxTokens            = 1000
	DefaultMaxTokensDetailed    = 2000
	DefaultChunkThresholdTokens = 10000
	DefaultChunkChars           = 40000
	DefaultMaxDepth             = 3
)

// Config tunes models, output caps, and chunking bounds. Zero values take
// the defaults above.
type Config struct {
	Model                string
	FallbackModel        string
	Temperature          float64
	MaxTokens            int
	MaxTokensDetailed    int
	ChunkThresholdTokens int
	ChunkChars           int
	MaxDepth             int
}

type implSummarizer struct {
	generator llm.Generator
	cfg       Config
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// New creates a Summarizer on top of gen. m may be nil.
func New(gen llm.Generator, cfg Config, log logger.Logger, m *metrics.Metrics) Summarizer {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = DefaultFallbackModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxTokensDetailed <= 0 {
		cfg.MaxTokensDetailed = DefaultMaxTokensDetailed
	}
	if cfg.ChunkThresholdTokens <= 0 {
		cfg.ChunkThresholdTokens = DefaultChunkThresholdTokens
	}
	if cfg.ChunkChars <= 0 {
		cfg.ChunkChars = DefaultChunkChars
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &implSummarizer{
		generator: gen,
		cfg:       cfg,
		logger:    log,
		metrics:   m,
	}
}
