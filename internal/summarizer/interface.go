package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
)

// Summarizer turns transcripts into LLM-generated summaries.
type Summarizer interface {
	// Summarize fails with errs.ErrEmptyInput for a blank transcript. Model
	// failures on oversized transcripts degrade into a Result with a Note
	// instead of an error.
	Summarize(ctx context.Context, transcript string, style Style) (Result, error)
	// Chapters asks the model for a chapter listing of a timestamped
	// transcript. Any failure yields nil.
	Chapters(ctx context.Context, timestampedTranscript string) []textutil.Chapter
}
