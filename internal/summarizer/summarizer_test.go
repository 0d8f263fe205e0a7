package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/llm"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeGenerator struct {
	calls   []llm.Request
	respond func(req llm.Request) (string, error)
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.respond(req)
}

func tooLong() error {
	return errs.Wrap(errs.ErrContextLengthExceeded, "llm", "fake", "", nil)
}

// longSentence builds one sentence of roughly 39,600 characters so that
// three of them split into exactly three chunks.
func longSentence(word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ", 39600/(len(word)+1))) + "."
}

func threeChunkTranscript() string {
	return strings.Join([]string{longSentence("alpha"), longSentence("betaa"), longSentence("gamma")}, " ")
}

func chunkWord(user string) string {
	for _, w := range []string{"alpha", "betaa", "gamma"} {
		if strings.Contains(user, w+" "+w) {
			return w
		}
	}
	return ""
}

func TestSummarizeEmpty(t *testing.T) {
	s := New(&fakeGenerator{}, Config{}, logger.Nop(), nil)
	for _, in := range []string{"", "   \n\t"} {
		if _, err := s.Summarize(context.Background(), in, StyleBrief); !errors.Is(err, errs.ErrEmptyInput) {
			t.Errorf("Summarize(%q) error = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestSummarizeSingleShot(t *testing.T) {
	tests := []struct {
		name          string
		style         Style
		reply         string
		wantStyle     string
		wantMaxTokens int
		wantSections  []string
		wantWords     int
	}{
		{
			name:          "brief",
			style:         StyleBrief,
			reply:         "Short and sweet.",
			wantStyle:     ResultSimple,
			wantMaxTokens: 1000,
			wantSections:  []string{"main"},
			wantWords:     3,
		},
		{
			name:          "bullet",
			style:         StyleBullet,
			reply:         "- one\n- two",
			wantStyle:     ResultSimple,
			wantMaxTokens: 1000,
			wantSections:  []string{"main"},
			wantWords:     4,
		},
		{
			name:          "detailed",
			style:         StyleDetailed,
			reply:         "## Overview\nThe talk.\n## Key Points\n- a point\n## Conclusion\nDone.",
			wantStyle:     ResultDetailed,
			wantMaxTokens: 2000,
			wantSections:  []string{"overview", "key_points", "conclusion"},
			wantWords:     13,
		},
		{
			name:          "empty reply",
			style:         StyleBrief,
			reply:         "",
			wantStyle:     ResultSimple,
			wantMaxTokens: 1000,
			wantSections:  []string{"main"},
			wantWords:     0,
		},
		{
			name:          "one word",
			style:         StyleBrief,
			reply:         "Word",
			wantStyle:     ResultSimple,
			wantMaxTokens: 1000,
			wantSections:  []string{"main"},
			wantWords:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{respond: func(llm.Request) (string, error) { return tt.reply, nil }}
			res, err := New(gen, Config{}, logger.Nop(), nil).Summarize(context.Background(), "Hello there. How are you?", tt.style)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if len(gen.calls) != 1 {
				t.Fatalf("generator called %d times, want 1", len(gen.calls))
			}
			req := gen.calls[0]
			if req.MaxTokens != tt.wantMaxTokens || req.Model != DefaultModel || req.Temperature != 0.7 {
				t.Errorf("request = %+v", req)
			}
			if !strings.Contains(req.User, "Hello there. How are you?") {
				t.Errorf("user prompt missing transcript: %q", req.User)
			}
			if res.Style != tt.wantStyle || res.WordCount != tt.wantWords || res.Summary != tt.reply {
				t.Errorf("result = %+v", res)
			}
			if len(res.Sections) != len(tt.wantSections) {
				t.Errorf("sections = %v, want keys %v", res.Sections, tt.wantSections)
			}
			for _, k := range tt.wantSections {
				if _, ok := res.Sections[k]; !ok {
					t.Errorf("missing section %q in %v", k, res.Sections)
				}
			}
			if res.Degraded() {
				t.Error("single-shot result must not be degraded")
			}
		})
	}
}

func TestSummarizeFallbackOnContextLength(t *testing.T) {
	m := metrics.New()
	gen := &fakeGenerator{respond: func(req llm.Request) (string, error) {
		if req.Model == "big" {
			return "", tooLong()
		}
		return "fallback summary", nil
	}}
	s := New(gen, Config{Model: "big", FallbackModel: "small"}, logger.Nop(), m)

	res, err := s.Summarize(context.Background(), "Some text.", StyleBrief)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Summary != "fallback summary" {
		t.Errorf("summary = %q", res.Summary)
	}
	if len(gen.calls) != 2 || gen.calls[0].Model != "big" || gen.calls[1].Model != "small" {
		t.Errorf("calls = %+v", gen.calls)
	}
	if got := testutil.ToFloat64(m.LLMFallbacks); got != 1 {
		t.Errorf("fallback metric = %v", got)
	}
}

func TestSummarizeFallbackAlsoFails(t *testing.T) {
	gen := &fakeGenerator{respond: func(llm.Request) (string, error) { return "", tooLong() }}
	_, err := New(gen, Config{}, logger.Nop(), nil).Summarize(context.Background(), "Some text.", StyleBrief)
	if !errors.Is(err, errs.ErrService) {
		t.Fatalf("Summarize() error = %v, want ErrService", err)
	}
	if len(gen.calls) != 2 {
		t.Errorf("generator called %d times, want exactly one fallback attempt", len(gen.calls))
	}
}

func TestSummarizeOtherErrorsSkipFallback(t *testing.T) {
	gen := &fakeGenerator{respond: func(llm.Request) (string, error) { return "", errors.New("invalid api key") }}
	_, err := New(gen, Config{}, logger.Nop(), nil).Summarize(context.Background(), "Some text.", StyleBrief)
	if !errors.Is(err, errs.ErrService) {
		t.Fatalf("Summarize() error = %v, want ErrService", err)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator called %d times, want 1", len(gen.calls))
	}
}

func TestSummarizeChunkFailureIsolated(t *testing.T) {
	m := metrics.New()
	var combineInput string
	gen := &fakeGenerator{respond: func(req llm.Request) (string, error) {
		switch chunkWord(req.User) {
		case "alpha":
			return "Summary of alpha.", nil
		case "betaa":
			return "", tooLong()
		case "gamma":
			return "Summary of gamma.", nil
		}
		combineInput = req.User
		return "Final cohesive summary.", nil
	}}
	s := New(gen, Config{}, logger.Nop(), m)

	res, err := s.Summarize(context.Background(), threeChunkTranscript(), StyleBullet)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if res.Summary != "Final cohesive summary." || res.Degraded() {
		t.Errorf("result = %+v", res)
	}

	// alpha, beta primary, beta fallback, gamma, combine
	if len(gen.calls) != 5 {
		t.Fatalf("generator called %d times, want 5", len(gen.calls))
	}
	for i := 0; i < 4; i++ {
		if !strings.Contains(gen.calls[i].System, "concise summarizer") {
			t.Errorf("chunk call %d did not use the brief prompt: %q", i, gen.calls[i].System)
		}
	}
	if !strings.Contains(gen.calls[4].System, "bullet-point") {
		t.Errorf("combine call used %q, want the requested bullet style", gen.calls[4].System)
	}
	want := "Summary of alpha.\n\n[Summary of part 2 could not be generated]\n\nSummary of gamma."
	if !strings.Contains(combineInput, want) {
		t.Errorf("combine input = %q, want it to contain %q", combineInput, want)
	}
	if got := testutil.ToFloat64(m.SummaryChunkFailures); got != 1 {
		t.Errorf("chunk failure metric = %v", got)
	}
}

func TestSummarizeDegradesWhenCombineFails(t *testing.T) {
	m := metrics.New()
	gen := &fakeGenerator{respond: func(req llm.Request) (string, error) {
		switch chunkWord(req.User) {
		case "alpha":
			return "Summary of alpha.", nil
		case "betaa":
			return "", errors.New("service unavailable")
		case "gamma":
			return "Summary of gamma.", nil
		}
		return "", errors.New("service unavailable")
	}}
	s := New(gen, Config{}, logger.Nop(), m)

	res, err := s.Summarize(context.Background(), threeChunkTranscript(), StyleDetailed)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want := "Summary of alpha.\n\n[Summary of part 2 could not be generated]\n\nSummary of gamma."
	if res.Summary != want {
		t.Errorf("summary = %q, want %q", res.Summary, want)
	}
	if !res.Degraded() || res.Style != ResultSimple || res.Sections["main"] != want {
		t.Errorf("result = %+v", res)
	}
	if res.WordCount != 14 {
		t.Errorf("word count = %d, want 14", res.WordCount)
	}
	if got := testutil.ToFloat64(m.DegradedSummaries); got != 1 {
		t.Errorf("degraded metric = %v", got)
	}
}

func TestSummarizeRecursionIsBounded(t *testing.T) {
	gen := &fakeGenerator{respond: func(llm.Request) (string, error) {
		return "A long reply sentence.", nil
	}}
	cfg := Config{ChunkThresholdTokens: 2, ChunkChars: 10, MaxDepth: 2}
	res, err := New(gen, cfg, logger.Nop(), nil).Summarize(context.Background(), "One. Two. Three.", StyleBrief)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	// depth 0: two chunks, depth 1: two chunks, depth 2: forced single shot
	if len(gen.calls) != 5 {
		t.Errorf("generator called %d times, want 5", len(gen.calls))
	}
	if res.Summary != "A long reply sentence." {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestSummarizeCancelledDuringChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gen := &fakeGenerator{respond: func(req llm.Request) (string, error) {
		if chunkWord(req.User) == "betaa" {
			cancel()
			return "", context.Canceled
		}
		return "ok", nil
	}}

	_, err := New(gen, Config{}, logger.Nop(), nil).Summarize(ctx, threeChunkTranscript(), StyleBrief)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Summarize() error = %v, want context.Canceled", err)
	}
	if len(gen.calls) != 2 {
		t.Errorf("generator called %d times after cancellation, want 2", len(gen.calls))
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"brief", StyleBrief, false},
		{" Detailed ", StyleDetailed, false},
		{"BULLET", StyleBullet, false},
		{"haiku", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, errs.ErrInput) {
			t.Errorf("ParseStyle(%q) error = %v, want ErrInput", tt.in, err)
		}
	}
}
