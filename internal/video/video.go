package video

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

var reYouTube = regexp.MustCompile(`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)

// CleanInput repairs inputs mangled by shell escaping: backslashes and
// encoded backslashes are dropped, the rest is URL-decoded and trimmed.
func CleanInput(s string) string {
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.ReplaceAll(s, "%5C", "")
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	return strings.TrimSpace(s)
}

// IsYouTubeURL reports whether s points at youtube.com, youtu.be, or
// youtube-nocookie.com.
func IsYouTubeURL(s string) bool {
	return reYouTube.MatchString(s)
}

// Acquire downloads YouTube URLs and passes local files through. When the
// cleaned input is not a file, the raw input is tried as a path before
// giving up.
func (a *implAcquirer) Acquire(ctx context.Context, input string) (Video, error) {
	cleaned := CleanInput(input)

	if IsYouTubeURL(cleaned) {
		a.logger.Info(ctx, "Detected YouTube URL: %s", cleaned)
		return a.download(ctx, cleaned)
	}

	for _, candidate := range []string{cleaned, input} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			a.logger.Info(ctx, "Using local video file: %s", candidate)
			return Video{Path: candidate, Title: stem(candidate)}, nil
		}
	}

	if strings.HasPrefix(cleaned, "http://") || strings.HasPrefix(cleaned, "https://") {
		return Video{}, errs.Wrap(errs.ErrInput, "video", "acquire", fmt.Sprintf("unsupported URL %q: must be a YouTube URL or a file path", input), nil)
	}
	return Video{}, errs.Wrap(errs.ErrNotFound, "video", "acquire", fmt.Sprintf("%q is neither a YouTube URL nor an existing file", input), nil)
}

func (a *implAcquirer) download(ctx context.Context, link string) (Video, error) {
	if err := os.MkdirAll(a.cfg.TempDir, 0o755); err != nil {
		return Video{}, errs.Wrap(errs.ErrService, "video", "create temp dir", a.cfg.TempDir, err)
	}

	// after_move:filepath prints the final path once merging and renaming finish
	out, err := a.executor.Execute(ctx, a.cfg.YtDlpPath,
		"-f", a.cfg.Format,
		"-o", filepath.Join(a.cfg.TempDir, "%(title)s.%(ext)s"),
		"--no-playlist",
		"--no-warnings",
		"--no-simulate",
		"--print", "after_move:filepath",
		link,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Video{}, ctxErr
		}
		return Video{}, errs.Wrap(errs.ErrService, "video", "download", link, err)
	}

	path := lastLine(out)
	if path == "" {
		return Video{}, errs.Wrap(errs.ErrService, "video", "download", "yt-dlp did not report an output file", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return Video{}, errs.Wrap(errs.ErrService, "video", "download", "downloaded file missing", err)
	}

	a.logger.Info(ctx, "Download completed: %s", filepath.Base(path))
	return Video{Path: path, Title: stem(path), SourceURL: link, Downloaded: true}, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
