package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"talk.mp4", true},
		{"/in/Talk.MKV", true},
		{"clip.webm", true},
		{"notes.txt", false},
		{"audio.mp3", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesVideosSequentially(t *testing.T) {
	dir := t.TempDir()

	var (
		mu       sync.Mutex
		handled  []string
		active   int32
		overlaps int32
	)
	done := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		if atomic.AddInt32(&active, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)

		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return errors.New("handler errors are logged, not fatal")
	}

	w, err := New(dir, handler, logger.Nop(), Options{Settle: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- w.Start(ctx) }()

	for _, name := range []string{"a.mp4", "notes.txt", "b.mov"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for video %d", i+1)
		}
	}

	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 {
		t.Errorf("handled %v, want the two videos only", handled)
	}
	if atomic.LoadInt32(&overlaps) != 0 {
		t.Errorf("handler ran concurrently %d times", overlaps)
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop(), Options{})
	if err == nil {
		t.Fatal("New() should fail for a missing directory")
	}
}
