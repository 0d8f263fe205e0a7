package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/media"
	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

// WhisperCPPConfig points at a local whisper.cpp build and model.
type WhisperCPPConfig struct {
	BinaryPath string
	ModelPath  string
	Threads    int
	Prompt     string
}

// Local whisper.cpp backend; audio is converted to 16 kHz WAV first.
type whisperCPPBackend struct {
	cfg      WhisperCPPConfig
	executor executor.Executor
	media    media.Media
	logger   logger.Logger
}

// NewWhisperCPPBackend creates a Backend that shells out to whisper.cpp.
func NewWhisperCPPBackend(cfg WhisperCPPConfig, exec executor.Executor, m media.Media, log logger.Logger) Backend {
	if cfg.Threads <= 0 {
		cfg.Threads = 8
	}
	// Commands run in the audio directory, so relative paths are pinned now.
	cfg.ModelPath = absPath(cfg.ModelPath)
	if strings.ContainsRune(cfg.BinaryPath, filepath.Separator) {
		cfg.BinaryPath = absPath(cfg.BinaryPath)
	}
	return &whisperCPPBackend{cfg: cfg, executor: exec, media: m, logger: log}
}

func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

type whisperCPPOut struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *whisperCPPBackend) Name() string { return "whispercpp" }

func (w *whisperCPPBackend) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	wavPath, err := w.media.ToWAV16k(ctx, audioPath)
	if err != nil {
		return Result{}, err
	}
	// whisper.cpp runs inside the WAV's directory so its JSON lands next to it.
	dir := filepath.Dir(wavPath)
	wavName := filepath.Base(wavPath)
	outputBase := strings.TrimSuffix(wavName, filepath.Ext(wavName))
	jsonPath := filepath.Join(dir, outputBase+".json")
	defer media.Remove(ctx, w.logger, wavPath, jsonPath)

	if language == "" {
		language = "auto"
	}

	// -oj: JSON output with per-segment millisecond offsets
	// -bo 5: best of 5 candidates
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavName,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bo", "5",
		"--output-file", outputBase,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.ExecuteInDir(ctx, dir, w.cfg.BinaryPath, args...); err != nil {
		return Result{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return Result{}, fmt.Errorf("read whisper output: %w", err)
	}
	return parseWhisperCPP(raw)
}

func parseWhisperCPP(raw []byte) (Result, error) {
	var parsed whisperCPPOut
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, fmt.Errorf("parse whisper output: %w", err)
	}

	res := Result{Language: parsed.Result.Language, Segments: make([]Segment, 0, len(parsed.Transcription))}
	texts := make([]string, 0, len(parsed.Transcription))
	for _, s := range parsed.Transcription {
		text := strings.TrimSpace(s.Text)
		res.Segments = append(res.Segments, Segment{
			Start: float64(s.Offsets.From) / 1000,
			End:   float64(s.Offsets.To) / 1000,
			Text:  text,
		})
		if text != "" {
			texts = append(texts, text)
		}
	}
	if n := len(res.Segments); n > 0 {
		res.Duration = res.Segments[n-1].End
	}
	res.Text = strings.Join(texts, " ")
	return res, nil
}
