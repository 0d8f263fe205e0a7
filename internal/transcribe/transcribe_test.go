package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeBackend struct {
	calls    []string
	failOn   string
	language string
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Transcribe(ctx context.Context, audioPath, language string) (Result, error) {
	f.calls = append(f.calls, filepath.Base(audioPath))
	if f.failOn != "" && strings.HasSuffix(audioPath, f.failOn) {
		return Result{}, errors.New("rate limited")
	}
	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return Result{
		Text:     "text of " + name,
		Segments: []Segment{{Start: 0, End: 5, Text: "hello " + name}},
		Language: f.language,
		Duration: 600,
	}, nil
}

type fakeSplitter struct {
	count  int
	chunks []string
}

func (f *fakeSplitter) Split(ctx context.Context, audioPath string, segment time.Duration) ([]string, error) {
	dir := filepath.Dir(audioPath)
	for i := 0; i < f.count; i++ {
		p := filepath.Join(dir, fmt.Sprintf("chunk_%d.mp3", i))
		if err := os.WriteFile(p, []byte("tiny"), 0o644); err != nil {
			return nil, err
		}
		f.chunks = append(f.chunks, p)
	}
	return f.chunks, nil
}

func writeAudio(t *testing.T, size int) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "talk_audio.mp3")
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// 100 bytes against a ~52 byte limit forces splitting.
var tinyLimit = Options{MaxUploadMB: 0.00005, SegmentDuration: 10 * time.Minute}

func TestTranscribeSmallFileGoesDirect(t *testing.T) {
	backend := &fakeBackend{language: "en"}
	splitter := &fakeSplitter{count: 3}
	tr := New(backend, splitter, logger.Nop(), nil, Options{})

	res, err := tr.Transcribe(context.Background(), writeAudio(t, 100), "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(backend.calls) != 1 || len(splitter.chunks) != 0 {
		t.Errorf("backend calls = %v, chunks = %v", backend.calls, splitter.chunks)
	}
	if res.Text != "text of talk_audio" || res.Language != "en" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestTranscribeChunkedOffsets(t *testing.T) {
	m := metrics.New()
	backend := &fakeBackend{language: "fr"}
	splitter := &fakeSplitter{count: 3}
	tr := New(backend, splitter, logger.Nop(), m, tinyLimit)

	res, err := tr.Transcribe(context.Background(), writeAudio(t, 100), "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	want := []Segment{
		{Start: 0, End: 5, Text: "hello chunk_0"},
		{Start: 600, End: 605, Text: "hello chunk_1"},
		{Start: 1200, End: 1205, Text: "hello chunk_2"},
	}
	if len(res.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(res.Segments), len(want))
	}
	for i := range want {
		if res.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, res.Segments[i], want[i])
		}
	}
	if res.Text != "text of chunk_0 text of chunk_1 text of chunk_2" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Duration != 1800 {
		t.Errorf("duration = %v, want 1800", res.Duration)
	}
	if res.Language != "fr" {
		t.Errorf("language = %q, want first detected fr", res.Language)
	}
	if got := testutil.ToFloat64(m.TranscriptionChunks); got != 3 {
		t.Errorf("chunk metric = %v, want 3", got)
	}
	for _, c := range splitter.chunks {
		if _, err := os.Stat(c); !os.IsNotExist(err) {
			t.Errorf("chunk %s not removed", c)
		}
	}
}

func TestTranscribeChunkedPrefersLanguageHint(t *testing.T) {
	tr := New(&fakeBackend{language: "fr"}, &fakeSplitter{count: 2}, logger.Nop(), nil, tinyLimit)
	res, err := tr.Transcribe(context.Background(), writeAudio(t, 100), "de")
	if err != nil {
		t.Fatal(err)
	}
	if res.Language != "de" {
		t.Errorf("language = %q, want de", res.Language)
	}
}

func TestTranscribeChunkFailureCleansUp(t *testing.T) {
	backend := &fakeBackend{failOn: "chunk_1.mp3"}
	splitter := &fakeSplitter{count: 3}
	tr := New(backend, splitter, logger.Nop(), nil, tinyLimit)

	_, err := tr.Transcribe(context.Background(), writeAudio(t, 100), "")
	if !errors.Is(err, errs.ErrService) {
		t.Fatalf("Transcribe() error = %v, want ErrService", err)
	}
	if !strings.Contains(err.Error(), "chunk 2/3") {
		t.Errorf("error %q does not name the chunk", err)
	}
	for _, c := range splitter.chunks {
		if _, err := os.Stat(c); !os.IsNotExist(err) {
			t.Errorf("chunk %s not removed", c)
		}
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	tr := New(&fakeBackend{}, &fakeSplitter{}, logger.Nop(), nil, Options{})
	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"), "")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Transcribe() error = %v, want ErrNotFound", err)
	}
}

func TestTranscribeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := New(&fakeBackend{}, &fakeSplitter{count: 2}, logger.Nop(), nil, tinyLimit)
	if _, err := tr.Transcribe(ctx, writeAudio(t, 100), ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("Transcribe() error = %v, want context.Canceled", err)
	}
}

func TestFormatWithTimestamps(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "segments",
			res: Result{Text: "ignored", Segments: []Segment{
				{Start: 0, End: 5.5, Text: " Hello "},
				{Start: 3599, End: 3725, Text: "World"},
			}},
			want: "[00:00 - 00:05] Hello\n[59:59 - 01:02:05] World",
		},
		{
			name: "plain text",
			res:  Result{Text: "no timing"},
			want: "no timing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWithTimestamps(tt.res); got != tt.want {
				t.Errorf("FormatWithTimestamps() = %q, want %q", got, tt.want)
			}
		})
	}
}
