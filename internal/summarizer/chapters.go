package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
)

// Chapters uses the regular output cap and the same fallback rule as
// Summarize.
func (s *implSummarizer) Chapters(ctx context.Context, timestampedTranscript string) []textutil.Chapter {
	if strings.TrimSpace(timestampedTranscript) == "" {
		return nil
	}

	s.logger.Info(ctx, "Generating chapters...")
	out, err := s.generate(ctx, chaptersPrompt(timestampedTranscript), s.cfg.MaxTokens)
	if err != nil {
		s.logger.Warn(ctx, "Chapter generation failed: %v", err)
		return nil
	}

	chapters := textutil.ParseChapters(out)
	s.logger.Info(ctx, "Found %d chapters", len(chapters))
	return chapters
}
