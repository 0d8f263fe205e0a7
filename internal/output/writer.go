package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
)

const stampLayout = "20060102_150405"

type implWriter struct {
	dir    string
	logger logger.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string, log logger.Logger) Writer {
	return &implWriter{dir: dir, logger: log}
}

// FileStem is the sanitized title used in every output file name; titles
// with no usable characters fall back to "summary".
func FileStem(title string) string {
	if safe := textutil.SanitizeTitle(title); safe != "" {
		return safe
	}
	return "summary"
}

func (w *implWriter) WriteMarkdown(ctx context.Context, title, markdown string, at time.Time) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.md", FileStem(title), at.Format(stampLayout)))
	if err := w.ensureDir(); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", errs.Wrap(errs.ErrService, "output", "write markdown", path, err)
	}
	w.logger.Info(ctx, "Markdown summary saved: %s", path)
	return path, nil
}

func (w *implWriter) WriteDocx(ctx context.Context, title, markdown string, at time.Time) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.docx", FileStem(title), at.Format(stampLayout)))
	if err := w.ensureDir(); err != nil {
		return "", err
	}
	if err := renderDocx(markdown, path); err != nil {
		return "", errs.Wrap(errs.ErrService, "output", "write docx", path, err)
	}
	w.logger.Info(ctx, "Docx summary saved: %s", path)
	return path, nil
}

func (w *implWriter) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errs.Wrap(errs.ErrService, "output", "create output dir", w.dir, err)
	}
	return nil
}
