package output

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
)

const (
	defaultSpeechBaseURL = "https://api.openai.com/v1/"
	defaultSpeechModel   = "tts-1"
	defaultVoice         = "nova"
	// The speech endpoint rejects longer input.
	maxSpeechChars = 4096
)

// Voices lists the accepted speech voices.
var Voices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer", "sage"}

// ParseVoice validates a voice name.
func ParseVoice(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, known := range Voices {
		if v == known {
			return v, nil
		}
	}
	return "", errs.Wrap(errs.ErrInput, "speech", "parse voice", fmt.Sprintf("unknown voice %q (want one of %s)", v, strings.Join(Voices, ", ")), nil)
}

// SpeechConfig configures the OpenAI speech endpoint.
type SpeechConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
	Speed   float64
	Dir     string
	Timeout time.Duration
}

type openAISynthesizer struct {
	cfg     SpeechConfig
	client  openai.Client
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewSynthesizer creates a Synthesizer backed by OpenAI text-to-speech. m may
// be nil.
func NewSynthesizer(cfg SpeechConfig, httpClient *http.Client, log logger.Logger, m *metrics.Metrics) Synthesizer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSpeechBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = defaultSpeechModel
	}
	if cfg.Voice == "" {
		cfg.Voice = defaultVoice
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1.0
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return &openAISynthesizer{cfg: cfg, client: client, logger: log, metrics: m}
}

func (s *openAISynthesizer) Synthesize(ctx context.Context, text, title string, at time.Time) string {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		s.logger.Warn(ctx, "OpenAI API key not set, skipping audio generation")
		s.metrics.RecordSpeechFailure()
		return ""
	}

	path := filepath.Join(s.cfg.Dir, fmt.Sprintf("%s_audio_%s.mp3", FileStem(title), at.Format(stampLayout)))
	s.logger.Info(ctx, "Generating audio summary with voice '%s'...", s.cfg.Voice)

	if err := s.synthesize(ctx, truncateRunes(text, maxSpeechChars), path); err != nil {
		_ = os.Remove(path)
		s.logger.Warn(ctx, "Audio generation failed: %v", err)
		s.metrics.RecordSpeechFailure()
		return ""
	}

	s.logger.Info(ctx, "Audio summary saved: %s", path)
	return path
}

func (s *openAISynthesizer) synthesize(ctx context.Context, text, path string) error {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.cfg.Model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.cfg.Voice),
		Speed:          openai.Float(s.cfg.Speed),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
