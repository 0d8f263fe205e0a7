package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/transcribe"
)

// Request describes one summarization run.
type Request struct {
	// Input is a YouTube URL or a local video path.
	Input             string
	Style             summarizer.Style
	Language          string
	IncludeTranscript bool
	Chapters          bool
	Audio             bool
	Docx              bool
}

// Outcome reports what a run produced. AudioPath and DocxPath are empty when
// the step was skipped or failed softly.
type Outcome struct {
	RunID        string
	Title        string
	Source       string
	MarkdownPath string
	DocxPath     string
	AudioPath    string
	Summary      summarizer.Result
	Transcript   transcribe.Result
	Elapsed      time.Duration
}

// Processor drives a video through the whole pipeline.
type Processor interface {
	Process(ctx context.Context, req Request) (Outcome, error)
	// CleanTemp removes every regular file in the temp directory and returns
	// how many were deleted. It refuses while a run is in progress.
	CleanTemp(ctx context.Context) (int, error)
}
