package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
)

// maxSplitDepth stops segments that are still oversized from being split again.
const maxSplitDepth = 1

// Transcribe sends small audio straight to the backend and splits larger
// audio into fixed-length segments whose transcripts are stitched back
// together on a single timeline.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	return t.transcribe(ctx, audioPath, language, 0)
}

func (t *implTranscriber) transcribe(ctx context.Context, audioPath, language string, depth int) (Result, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, errs.Wrap(errs.ErrNotFound, "transcribe", "stat audio", audioPath, err)
		}
		return Result{}, errs.Wrap(errs.ErrInput, "transcribe", "stat audio", audioPath, err)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB <= t.opts.MaxUploadMB || depth >= maxSplitDepth {
		if sizeMB > t.opts.MaxUploadMB {
			t.logger.Warn(ctx, "Segment %s is still %s, sending as-is", filepath.Base(audioPath), humanize.IBytes(uint64(info.Size())))
		}
		return t.transcribeSingle(ctx, audioPath, language)
	}

	t.logger.Info(ctx, "Audio file is %s, splitting into chunks...", humanize.IBytes(uint64(info.Size())))
	return t.transcribeChunked(ctx, audioPath, language, depth)
}

func (t *implTranscriber) transcribeSingle(ctx context.Context, audioPath, language string) (Result, error) {
	t.logger.Info(ctx, "Transcribing audio file with %s: %s", t.backend.Name(), filepath.Base(audioPath))

	res, err := t.backend.Transcribe(ctx, audioPath, language)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, errs.Wrap(errs.ErrService, "transcribe", t.backend.Name(), filepath.Base(audioPath), err)
	}
	if res.Language == "" {
		res.Language = language
	}
	if res.Segments == nil {
		res.Segments = []Segment{}
	}
	return res, nil
}

func (t *implTranscriber) transcribeChunked(ctx context.Context, audioPath, language string, depth int) (Result, error) {
	chunks, err := t.splitter.Split(ctx, audioPath, t.opts.SegmentDuration)
	if err != nil {
		return Result{}, fmt.Errorf("split audio: %w", err)
	}
	defer media.Remove(ctx, t.logger, chunks...)

	offsetStep := t.opts.SegmentDuration.Seconds()
	combined := Result{Segments: []Segment{}, Language: language}
	texts := make([]string, 0, len(chunks))

	for i, chunkPath := range chunks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		t.logger.Info(ctx, "Transcribing chunk %d/%d...", i+1, len(chunks))

		res, err := t.transcribe(ctx, chunkPath, language, depth+1)
		if err != nil {
			return Result{}, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		t.metrics.RecordTranscriptionChunk()

		texts = append(texts, res.Text)
		offset := float64(i) * offsetStep
		for _, seg := range res.Segments {
			seg.Start += offset
			seg.End += offset
			combined.Segments = append(combined.Segments, seg)
		}
		combined.Duration += res.Duration
		if combined.Language == "" {
			combined.Language = res.Language
		}
	}

	combined.Text = strings.Join(texts, " ")
	return combined, nil
}
