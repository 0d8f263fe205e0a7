package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

// ExtractAudio extracts the audio track of a video file.
// mp3 is encoded with libmp3lame at the configured bitrate; wav is 16-bit PCM
// at 16 kHz, the format speech models prefer.
func (m *implMedia) ExtractAudio(ctx context.Context, videoPath, format string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errs.Wrap(errs.ErrNotFound, "extract audio", "stat video", videoPath, err)
		}
		return "", errs.Wrap(errs.ErrInput, "extract audio", "stat video", videoPath, err)
	}
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if format == "" {
		format = "mp3"
	}
	if err := os.MkdirAll(m.cfg.TempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(m.cfg.TempDir, stem+"_audio."+format)

	m.logger.Info(ctx, "Extracting audio from %s", filepath.Base(videoPath))

	args := []string{"-y", "-i", videoPath, "-vn"}
	switch format {
	case "mp3":
		args = append(args, "-acodec", "libmp3lame", "-b:a", m.cfg.AudioBitrate)
	case "wav":
		args = append(args, "-acodec", "pcm_s16le", "-ar", "16000")
	}
	args = append(args, audioPath)

	if _, err := m.executor.Execute(ctx, m.cfg.FFmpegPath, args...); err != nil {
		return "", errs.Wrap(errs.ErrExternalTool, "extract audio", "ffmpeg", "", err)
	}

	m.logger.Info(ctx, "Audio extracted successfully: %s", filepath.Base(audioPath))
	return audioPath, nil
}

// Duration probes the container duration with ffprobe.
func (m *implMedia) Duration(ctx context.Context, path string) (float64, error) {
	out, err := m.executor.Execute(ctx, m.cfg.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, errs.Wrap(errs.ErrExternalTool, "probe", "ffprobe", path, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrExternalTool, "probe", "parse duration", strings.TrimSpace(out), err)
	}
	return seconds, nil
}

// Split cuts audio into fixed-length mp3 segments next to the source file.
// Segment files already written are removed if a later cut fails.
func (m *implMedia) Split(ctx context.Context, audioPath string, segment time.Duration) ([]string, error) {
	if segment <= 0 {
		return nil, errs.Wrap(errs.ErrConfiguration, "split audio", "", "segment length must be positive", nil)
	}
	total, err := m.Duration(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, errs.Wrap(errs.ErrInput, "split audio", "", "audio has no duration", nil)
	}

	segSeconds := segment.Seconds()
	count := int(math.Ceil(total / segSeconds))
	dir := filepath.Dir(audioPath)
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	m.logger.Info(ctx, "Splitting %.0fs of audio into %d segments of %s", total, count, segment)

	chunks := make([]string, 0, count)
	for i := 0; i < count; i++ {
		chunkPath := filepath.Join(dir, fmt.Sprintf("%s_chunk_%d.mp3", stem, i))
		args := []string{
			"-y",
			"-ss", strconv.FormatFloat(float64(i)*segSeconds, 'f', 3, 64),
			"-t", strconv.FormatFloat(segSeconds, 'f', 3, 64),
			"-i", audioPath,
			"-vn",
			"-acodec", "libmp3lame",
			"-b:a", m.cfg.AudioBitrate,
			chunkPath,
		}
		if _, err := m.executor.Execute(ctx, m.cfg.FFmpegPath, args...); err != nil {
			Remove(ctx, m.logger, chunks...)
			return nil, errs.Wrap(errs.ErrExternalTool, "split audio", fmt.Sprintf("segment %d", i), "", err)
		}
		chunks = append(chunks, chunkPath)
	}
	return chunks, nil
}

// ToWAV16k converts audio to 16 kHz mono PCM WAV.
func (m *implMedia) ToWAV16k(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_16k.wav"

	// -ar 16000 -ac 1: the sample rate and channel layout whisper.cpp expects
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}
	if _, err := m.executor.Execute(ctx, m.cfg.FFmpegPath, args...); err != nil {
		return "", errs.Wrap(errs.ErrExternalTool, "convert audio", "ffmpeg", "", err)
	}
	return wavPath, nil
}
