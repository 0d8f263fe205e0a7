package processor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

func (p *implProcessor) lockPath() string {
	return filepath.Join(p.cfg.TempDir, lockFileName)
}

// holdRunLock takes a shared lock on the temp directory for the duration of
// a run. Runs may share the directory; clean-temp may not.
func (p *implProcessor) holdRunLock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(p.cfg.TempDir, 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrService, "processor", "create temp dir", p.cfg.TempDir, err)
	}

	lock := flock.New(p.lockPath())
	ok, err := lock.TryRLock()
	if err != nil {
		return nil, errs.Wrap(errs.ErrService, "processor", "lock temp dir", p.cfg.TempDir, err)
	}
	if !ok {
		return nil, errs.Wrap(errs.ErrService, "processor", "lock temp dir", "temp directory is being cleaned", nil)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn(ctx, "Failed to release temp dir lock: %v", err)
		}
	}, nil
}

// CleanTemp removes leftover files from interrupted runs.
func (p *implProcessor) CleanTemp(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(p.cfg.TempDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Info(ctx, "No temp directory found: %s", p.cfg.TempDir)
			return 0, nil
		}
		return 0, errs.Wrap(errs.ErrService, "clean-temp", "read temp dir", p.cfg.TempDir, err)
	}

	lock := flock.New(p.lockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return 0, errs.Wrap(errs.ErrService, "clean-temp", "lock temp dir", p.cfg.TempDir, err)
	}
	if !ok {
		return 0, errs.Wrap(errs.ErrService, "clean-temp", "lock temp dir", "a run is using the temp directory", nil)
	}
	defer func() { _ = lock.Unlock() }()

	removed := 0
	for _, entry := range entries {
		if entry.Name() == lockFileName || !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(p.cfg.TempDir, entry.Name())
		if err := os.Remove(path); err != nil {
			p.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
			continue
		}
		p.logger.Info(ctx, "Removed: %s", entry.Name())
		removed++
	}

	p.logger.Info(ctx, "Cleaned up %d temporary file(s)", removed)
	return removed, nil
}
