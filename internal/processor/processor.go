package processor

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/events"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/internal/output"
	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
	"github.com/nguyentantai21042004/yt-summarize/internal/transcribe"
	"github.com/nguyentantai21042004/yt-summarize/internal/video"
)

// Process orchestrates the entire summarization pipeline. Downloaded video
// and extracted audio are removed on every exit path.
func (p *implProcessor) Process(ctx context.Context, req Request) (out Outcome, err error) {
	startTime := time.Now()

	runID, ok := logger.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = logger.WithRunID(ctx, runID)
	}
	out.RunID = runID

	defer func() {
		out.Elapsed = time.Since(startTime)
		p.metrics.RecordRun(runResult(err))
	}()

	if strings.TrimSpace(req.Input) == "" {
		return out, errs.Wrap(errs.ErrInput, "processor", "", "no video URL or path given", nil)
	}
	if req.Style == "" {
		req.Style = summarizer.StyleDetailed
	}

	release, err := p.holdRunLock(ctx)
	if err != nil {
		return out, err
	}
	defer release()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video summary: %s", req.Input)
	p.logger.Info(ctx, "========================================")

	// Step 1: Locate or download the video
	var vid video.Video
	err = p.stage(ctx, "acquire", "Acquiring video", func(ctx context.Context) error {
		var err error
		vid, err = p.acquirer.Acquire(ctx, req.Input)
		return err
	})
	if err != nil {
		return out, err
	}
	if vid.Downloaded {
		defer media.Remove(ctx, p.logger, vid.Path)
	}
	out.Title, out.Source = vid.Title, vid.SourceURL

	// Step 2: Extract audio
	var audioPath string
	err = p.stage(ctx, "extract_audio", "Extracting audio", func(ctx context.Context) error {
		var err error
		audioPath, err = p.media.ExtractAudio(ctx, vid.Path, p.cfg.AudioFormat)
		return err
	})
	if err != nil {
		return out, err
	}
	defer media.Remove(ctx, p.logger, audioPath)

	// Step 3: Transcribe
	err = p.stage(ctx, "transcribe", "Transcribing audio", func(ctx context.Context) error {
		var err error
		out.Transcript, err = p.transcriber.Transcribe(ctx, audioPath, req.Language)
		return err
	})
	if err != nil {
		return out, err
	}
	p.logger.Info(ctx, "Transcript: %d words, %d segments", textutil.WordCount(out.Transcript.Text), len(out.Transcript.Segments))

	// Step 4: Summarize
	err = p.stage(ctx, "summarize", "Generating "+string(req.Style)+" summary", func(ctx context.Context) error {
		var err error
		out.Summary, err = p.summarizer.Summarize(ctx, out.Transcript.Text, req.Style)
		return err
	})
	if err != nil {
		return out, err
	}
	if out.Summary.Degraded() {
		p.logger.Warn(ctx, "Summary is degraded: %s", out.Summary.Note)
	}

	// Step 5: Chapters need segment timings
	var chapters []textutil.Chapter
	if req.Chapters {
		if len(out.Transcript.Segments) == 0 {
			p.logger.Warn(ctx, "Transcript has no segment timings, skipping chapters")
		} else {
			_ = p.stage(ctx, "chapters", "Generating chapters", func(ctx context.Context) error {
				chapters = p.summarizer.Chapters(ctx, transcribe.FormatWithTimestamps(out.Transcript))
				return nil
			})
		}
	}

	// Step 6: Render and save
	generatedAt := p.now()
	markdown := output.RenderMarkdown(output.Document{
		Title:             out.Title,
		Source:            out.Source,
		GeneratedAt:       generatedAt,
		Summary:           out.Summary,
		Transcript:        out.Transcript,
		Chapters:          chapters,
		IncludeTranscript: req.IncludeTranscript,
	})
	err = p.stage(ctx, "write", "Writing summary", func(ctx context.Context) error {
		var err error
		out.MarkdownPath, err = p.writer.WriteMarkdown(ctx, out.Title, markdown, generatedAt)
		if err != nil || !req.Docx {
			return err
		}
		if out.DocxPath, err = p.writer.WriteDocx(ctx, out.Title, markdown, generatedAt); err != nil {
			p.logger.Warn(ctx, "Failed to write docx summary: %v", err)
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	// Step 7: Speech summary is optional
	if req.Audio && p.synthesizer != nil {
		_ = p.stage(ctx, "speech", "Generating audio summary", func(ctx context.Context) error {
			out.AudioPath = p.synthesizer.Synthesize(ctx, output.SpeechText(out.Summary, out.Title), out.Title, generatedAt)
			return nil
		})
	}

	p.publish(ctx, req, out, generatedAt)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summary completed successfully!")
	p.logger.Info(ctx, "Markdown: %s", out.MarkdownPath)
	if out.AudioPath != "" {
		p.logger.Info(ctx, "Audio: %s", out.AudioPath)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return out, nil
}

// stage runs fn with the stage name attached to ctx, narrating start and
// completion and recording its duration.
func (p *implProcessor) stage(ctx context.Context, name, label string, fn func(context.Context) error) error {
	ctx = logger.WithStage(ctx, name)
	p.logger.Info(ctx, "%s...", label)

	started := time.Now()
	err := fn(ctx)
	elapsed := time.Since(started)
	p.metrics.ObserveStage(name, elapsed)

	if err != nil {
		p.logger.Error(ctx, "%s failed: %s", label, logger.FormatError(err))
		return err
	}
	p.logger.Info(ctx, "%s done in %s", label, elapsed.Round(time.Millisecond))
	return nil
}

func (p *implProcessor) publish(ctx context.Context, req Request, out Outcome, at time.Time) {
	if p.publisher == nil {
		return
	}
	event := events.SummaryCompleted{
		ID:           uuid.NewString(),
		RunID:        out.RunID,
		Title:        out.Title,
		Source:       out.Source,
		Style:        string(req.Style),
		WordCount:    out.Summary.WordCount,
		MarkdownPath: out.MarkdownPath,
		DocxPath:     out.DocxPath,
		AudioPath:    out.AudioPath,
		Degraded:     out.Summary.Degraded(),
		CreatedAt:    at.UTC(),
	}
	if err := p.publisher.PublishSummaryCompleted(ctx, event); err != nil {
		p.logger.Warn(ctx, "Failed to publish completion event for %s: %v", filepath.Base(out.MarkdownPath), err)
	}
}

func runResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errs.IsInput(err):
		return "input_error"
	default:
		return "error"
	}
}
