package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

type fakeExecutor struct {
	probeOutput  string
	failFFmpegAt int // 1-based ffmpeg call that fails, 0 never
	ffmpegCalls  int
	calls        [][]string
	known        map[string]bool
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	switch name {
	case "ffprobe":
		return f.probeOutput, nil
	case "ffmpeg":
		f.ffmpegCalls++
		if f.failFFmpegAt > 0 && f.ffmpegCalls == f.failFFmpegAt {
			return "", fmt.Errorf("ffmpeg exploded")
		}
		out := args[len(args)-1]
		return "", os.WriteFile(out, []byte("audio"), 0o644)
	}
	return "", fmt.Errorf("unexpected command %s", name)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	if f.known[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func newTestMedia(t *testing.T, fe *fakeExecutor) (Media, string) {
	t.Helper()
	dir := t.TempDir()
	return New(Config{TempDir: dir}, fe, logger.Nop()), dir
}

func TestExtractAudio(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantExt  string
		wantArgs []string
	}{
		{"mp3", "mp3", ".mp3", []string{"-acodec", "libmp3lame", "-b:a", "192k"}},
		{"wav", "wav", ".wav", []string{"-acodec", "pcm_s16le", "-ar", "16000"}},
		{"default is mp3", "", ".mp3", []string{"libmp3lame"}},
		{"other format", "ogg", ".ogg", []string{"-vn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := &fakeExecutor{}
			m, dir := newTestMedia(t, fe)
			video := filepath.Join(dir, "talk.mp4")
			if err := os.WriteFile(video, []byte("video"), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := m.ExtractAudio(context.Background(), video, tt.format)
			if err != nil {
				t.Fatalf("ExtractAudio() error = %v", err)
			}
			if want := filepath.Join(dir, "talk_audio"+tt.wantExt); got != want {
				t.Errorf("ExtractAudio() = %s, want %s", got, want)
			}
			joined := strings.Join(fe.calls[0], " ")
			if !strings.Contains(joined, strings.Join(tt.wantArgs, " ")) {
				t.Errorf("ffmpeg args %q missing %q", joined, tt.wantArgs)
			}
		})
	}
}

func TestExtractAudioMissingVideo(t *testing.T) {
	m, dir := newTestMedia(t, &fakeExecutor{})
	_, err := m.ExtractAudio(context.Background(), filepath.Join(dir, "missing.mp4"), "mp3")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("ExtractAudio() error = %v, want ErrNotFound", err)
	}
}

func TestSplit(t *testing.T) {
	fe := &fakeExecutor{probeOutput: "1500.25\n"}
	m, dir := newTestMedia(t, fe)
	audio := filepath.Join(dir, "talk_audio.mp3")

	chunks, err := m.Split(context.Background(), audio, 10*time.Minute)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("Split() produced %d chunks, want 3", len(chunks))
	}
	for i, c := range chunks {
		if want := filepath.Join(dir, fmt.Sprintf("talk_audio_chunk_%d.mp3", i)); c != want {
			t.Errorf("chunk %d = %s, want %s", i, c, want)
		}
	}
	// calls[0] is ffprobe; calls[2] is the second cut
	if got := strings.Join(fe.calls[2], " "); !strings.Contains(got, "-ss 600.000 -t 600.000") {
		t.Errorf("second cut args = %q", got)
	}
}

func TestSplitFailureRemovesWrittenSegments(t *testing.T) {
	fe := &fakeExecutor{probeOutput: "1800", failFFmpegAt: 3}
	m, dir := newTestMedia(t, fe)

	_, err := m.Split(context.Background(), filepath.Join(dir, "a.mp3"), 10*time.Minute)
	if !errors.Is(err, errs.ErrExternalTool) {
		t.Fatalf("Split() error = %v, want ErrExternalTool", err)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, "a_chunk_*.mp3"))
	if len(leftovers) != 0 {
		t.Errorf("segments left behind: %v", leftovers)
	}
}

func TestDurationParseError(t *testing.T) {
	m, _ := newTestMedia(t, &fakeExecutor{probeOutput: "N/A"})
	if _, err := m.Duration(context.Background(), "x.mp3"); !errors.Is(err, errs.ErrExternalTool) {
		t.Fatalf("Duration() error = %v", err)
	}
}

func TestCheckTools(t *testing.T) {
	fe := &fakeExecutor{known: map[string]bool{"ffmpeg": true}}
	statuses := CheckTools(fe, []Requirement{
		{Name: "FFmpeg", Command: "ffmpeg"},
		{Name: "FFprobe", Command: "ffprobe"},
		{Name: "yt-dlp", Command: "yt-dlp", Optional: true},
		{Name: "Unset", Command: " "},
	})
	if !statuses[0].Available || statuses[1].Available || statuses[2].Available {
		t.Errorf("unexpected availability: %+v", statuses)
	}
	if statuses[3].Detail != "command not configured" {
		t.Errorf("detail = %q", statuses[3].Detail)
	}
	missing := MissingRequired(statuses)
	if len(missing) != 2 || missing[0].Name != "FFprobe" || missing[1].Name != "Unset" {
		t.Errorf("MissingRequired() = %+v", missing)
	}
}
