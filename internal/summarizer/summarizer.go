package summarizer

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/llm"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
)

// Summarize summarizes short transcripts in one call. Longer ones are split
// at sentence boundaries, each chunk is briefly summarized, and the joined
// chunk summaries are summarized again in the requested style.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string, style Style) (Result, error) {
	if strings.TrimSpace(transcript) == "" {
		return Result{}, errs.Wrap(errs.ErrEmptyInput, "summarize", "", "no transcript provided for summarization", nil)
	}
	return s.summarize(ctx, transcript, style, 0)
}

func (s *implSummarizer) summarize(ctx context.Context, text string, style Style, depth int) (Result, error) {
	tokens := textutil.EstimateTokens(text)
	if tokens <= s.cfg.ChunkThresholdTokens || depth >= s.cfg.MaxDepth {
		if tokens > s.cfg.ChunkThresholdTokens {
			s.logger.Warn(ctx, "Combined summary still ~%d tokens at depth %d, summarizing in one call", tokens, depth)
		}
		return s.singleShot(ctx, text, style)
	}

	s.logger.Info(ctx, "Transcript is ~%d tokens, summarizing in chunks...", tokens)
	return s.summarizeChunked(ctx, text, style, depth)
}

func (s *implSummarizer) summarizeChunked(ctx context.Context, text string, style Style, depth int) (Result, error) {
	chunks := textutil.Split(text, s.cfg.ChunkChars)
	parts := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		s.logger.Info(ctx, "Summarizing chunk %d/%d...", i+1, len(chunks))

		res, err := s.singleShot(ctx, chunk, StyleBrief)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			s.logger.Warn(ctx, "Chunk %d/%d failed, using placeholder: %v", i+1, len(chunks), err)
			s.metrics.RecordSummaryChunkFailure()
			parts = append(parts, chunkPlaceholder(i+1))
			continue
		}
		parts = append(parts, res.Summary)
	}

	combined := strings.Join(parts, "\n\n")
	s.logger.Info(ctx, "Combining %d chunk summaries...", len(parts))

	final, err := s.summarize(ctx, combined, style, depth+1)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		s.logger.Warn(ctx, "Combining chunk summaries failed, returning them as-is: %v", err)
		s.metrics.RecordDegradedSummary()
		return Result{
			Summary:   combined,
			Style:     ResultSimple,
			WordCount: textutil.WordCount(combined),
			Sections:  map[string]string{textutil.SectionMain: combined},
			Note:      degradedNote,
		}, nil
	}
	return final, nil
}

// singleShot sends one prompt. A context length rejection from the primary
// model is retried exactly once on the fallback model.
func (s *implSummarizer) singleShot(ctx context.Context, text string, style Style) (Result, error) {
	prompt := stylePrompt(style, text)
	maxTokens := s.cfg.MaxTokens
	if style == StyleDetailed {
		maxTokens = s.cfg.MaxTokensDetailed
	}

	summary, err := s.generate(ctx, prompt, maxTokens)
	if err != nil {
		return Result{}, err
	}
	return buildResult(summary, style), nil
}

func (s *implSummarizer) generate(ctx context.Context, prompt promptPair, maxTokens int) (string, error) {
	req := llm.Request{
		System:      prompt.system,
		User:        prompt.user,
		Model:       s.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: s.cfg.Temperature,
	}

	out, err := s.generator.Generate(ctx, req)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, errs.ErrContextLengthExceeded) {
		return "", wrapGenerateErr(ctx, err)
	}

	s.logger.Warn(ctx, "Model %s rejected the input as too long, retrying with %s", s.cfg.Model, s.cfg.FallbackModel)
	s.metrics.RecordLLMFallback()
	req.Model = s.cfg.FallbackModel
	out, err = s.generator.Generate(ctx, req)
	if err != nil {
		return "", wrapGenerateErr(ctx, err)
	}
	return out, nil
}

func wrapGenerateErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, errs.ErrService) {
		return err
	}
	return errs.Wrap(errs.ErrService, "summarize", "generate", "summarization failed", err)
}

func buildResult(summary string, style Style) Result {
	res := Result{
		Summary:   summary,
		WordCount: textutil.WordCount(summary),
	}
	if style == StyleDetailed {
		res.Style = ResultDetailed
		res.Sections = textutil.ParseSections(summary)
		return res
	}
	res.Style = ResultSimple
	res.Sections = map[string]string{textutil.SectionMain: summary}
	return res
}
