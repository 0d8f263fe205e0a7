package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1/"

// OpenAIConfig configures the Whisper transcription endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI speech-to-text via audio.transcriptions with verbose_json output
type openAIBackend struct {
	cfg    OpenAIConfig
	client openai.Client
}

// NewOpenAIBackend creates a Backend backed by the OpenAI transcription API.
func NewOpenAIBackend(cfg OpenAIConfig, httpClient *http.Client) Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return &openAIBackend{cfg: cfg, client: client}
}

type openAIResp struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *openAIBackend) Name() string { return "openai" }

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:           f,
		Model:          openai.AudioModel(o.cfg.Model),
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	// verbose_json carries segments the typed response drops.
	var or openAIResp
	if err := o.client.Post(ctx, "audio/transcriptions", params, &or); err != nil {
		return Result{}, fmt.Errorf("openai transcription: %w", err)
	}

	res := Result{
		Text:     strings.TrimSpace(or.Text),
		Language: or.Language,
		Duration: or.Duration,
		Segments: make([]Segment, 0, len(or.Segments)),
	}
	for _, s := range or.Segments {
		res.Segments = append(res.Segments, Segment{Start: s.Start, End: s.End, Text: strings.TrimSpace(s.Text)})
	}
	return res, nil
}
