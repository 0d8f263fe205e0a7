package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

// GeminiConfig lists the API keys to rotate through. BaseURL is only set in
// tests.
type GeminiConfig struct {
	APIKeys []string
	BaseURL string
}

type geminiGenerator struct {
	apiKeys    []string
	currentKey int
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewGemini creates a Generator that rotates through the supplied Gemini API
// keys when one is rate limited.
func NewGemini(cfg GeminiConfig, httpClient *http.Client, log logger.Logger) Generator {
	keys := make([]string, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return &geminiGenerator{
		apiKeys:    keys,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     log,
	}
}

func (g *geminiGenerator) Name() string { return "gemini" }

// Generate rotates API keys on 429 / quota errors. Any other failure is
// returned immediately.
func (g *geminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", classify(ctx, g.Name(), req.Model, errors.New("no API keys configured"), false)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var lastErr error
	for range len(g.apiKeys) {
		client, err := g.client(ctx, g.apiKeys[g.currentKey])
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), genCfg)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", classify(ctx, g.Name(), req.Model, fmt.Errorf("generate content: %w", err), isGeminiContextLength(err))
		}

		if text := strings.TrimSpace(result.Text()); text != "" {
			return text, nil
		}
		return "", classify(ctx, g.Name(), req.Model, errors.New("empty response from Gemini"), false)
	}

	return "", classify(ctx, g.Name(), req.Model, fmt.Errorf("all API keys exhausted: %w", lastErr), false)
}

func (g *geminiGenerator) client(ctx context.Context, key string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	return genai.NewClient(ctx, cfg)
}

func (g *geminiGenerator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func apiError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func isRateLimited(err error) bool {
	if apiErr, ok := apiError(err); ok && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func isGeminiContextLength(err error) bool {
	if apiErr, ok := apiError(err); ok {
		return apiErr.Code == http.StatusBadRequest && mentionsContextLength(apiErr.Message)
	}
	return mentionsContextLength(err.Error())
}
