package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1/"
	defaultHTTPTimeout   = 5 * time.Minute
)

// OpenAIConfig captures the settings required to call the chat completions API.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Option customizes a backend.
type Option func(*openAIGenerator)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *openAIGenerator) {
		if client != nil {
			g.httpClient = client
		}
	}
}

type openAIGenerator struct {
	cfg        OpenAIConfig
	httpClient *http.Client
	client     openai.Client
}

// NewOpenAI creates a Generator backed by OpenAI chat completions.
func NewOpenAI(cfg OpenAIConfig, opts ...Option) Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	g := &openAIGenerator{
		cfg: OpenAIConfig{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			BaseURL: strings.TrimSpace(cfg.BaseURL),
			Timeout: timeout,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cfg.BaseURL == "" {
		g.cfg.BaseURL = defaultOpenAIBaseURL
	}
	// Retries belong to the fallback chain, not the SDK.
	g.client = openai.NewClient(
		option.WithAPIKey(g.cfg.APIKey),
		option.WithBaseURL(withTrailingSlash(g.cfg.BaseURL)),
		option.WithHTTPClient(g.httpClient),
		option.WithMaxRetries(0),
	)
	return g
}

func withTrailingSlash(base string) string {
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

func (g *openAIGenerator) Name() string { return "openai" }

func (g *openAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.User) == "" {
		return "", classify(ctx, g.Name(), req.Model, errors.New("user prompt required"), false)
	}
	if g.cfg.APIKey == "" {
		return "", classify(ctx, g.Name(), req.Model, errors.New("api key required"), false)
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.System != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(req.System))
	}
	params.Messages = append(params.Messages, openai.UserMessage(req.User))

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(ctx, g.Name(), req.Model, err, isContextLengthError(err))
	}
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
	}
	return "", classify(ctx, g.Name(), req.Model, errors.New("llm request: empty choices"), false)
}

// isContextLengthError reports whether a chat completion was rejected for
// exceeding the model's context window.
func isContextLengthError(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		return false
	}
	if apiErr.Code == "context_length_exceeded" || mentionsContextLength(apiErr.Message) {
		return true
	}
	return mentionsContextLength(string(apiErr.DumpResponse(true)))
}
