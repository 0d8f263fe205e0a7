package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

const geminiOK = `{"candidates":[{"content":{"role":"model","parts":[{"text":"Gemini summary."}]}}]}`

func TestGeminiRotatesRateLimitedKeys(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		key := r.Header.Get("x-goog-api-key")
		seen = append(seen, key)
		w.Header().Set("Content-Type", "application/json")
		if key == "key-1" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		_, _ = io.WriteString(w, geminiOK)
	}))
	defer server.Close()

	gen := NewGemini(GeminiConfig{APIKeys: []string{"key-1", " key-2 "}, BaseURL: server.URL}, server.Client(), logger.Nop())
	out, err := gen.Generate(context.Background(), Request{System: "s", User: "u", Model: "gemini-2.5-flash", MaxTokens: 1000, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "Gemini summary." {
		t.Errorf("Generate() = %q", out)
	}
	if len(seen) != 2 || seen[0] != "key-1" || seen[1] != "key-2" {
		t.Errorf("keys used = %v", seen)
	}
}

func TestGeminiContextLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"The input token count (2000000) exceeds the maximum number of tokens allowed (1048576).","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	gen := NewGemini(GeminiConfig{APIKeys: []string{"k"}, BaseURL: server.URL}, server.Client(), logger.Nop())
	_, err := gen.Generate(context.Background(), Request{User: "u", Model: "gemini-2.5-flash"})
	if !errors.Is(err, errs.ErrContextLengthExceeded) {
		t.Fatalf("Generate() error = %v, want ErrContextLengthExceeded", err)
	}
}

func TestGeminiNoKeys(t *testing.T) {
	_, err := NewGemini(GeminiConfig{APIKeys: []string{" "}}, nil, logger.Nop()).Generate(context.Background(), Request{User: "u"})
	if !errors.Is(err, errs.ErrService) {
		t.Fatalf("Generate() error = %v", err)
	}
}

func TestMentionsContextLength(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"This model's maximum context length is 8192 tokens", true},
		{"error code: context_length_exceeded", true},
		{"The input token count (5) exceeds the maximum number of tokens allowed (4).", true},
		{"rate limit reached", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := mentionsContextLength(tt.msg); got != tt.want {
			t.Errorf("mentionsContextLength(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
