package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

// Options tunes the watcher. Settle is how long a new file is left alone
// before it is handed over, so the writer can finish.
type Options struct {
	Settle time.Duration
}

// New creates a new Watcher instance for inputDir.
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.Wrap(errs.ErrService, "watch", "create watcher", "", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, errs.Wrap(errs.ErrInput, "watch", "add watch path", inputDir, err)
	}

	if opts.Settle <= 0 {
		opts.Settle = defaultSettle
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   opts.Settle,
	}, nil
}
