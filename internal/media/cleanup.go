package media

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/yt-summarize/internal/logger"
)

// Remove deletes temporary files, logging a warning for each one that could
// not be removed. Files that are already gone are ignored.
func Remove(ctx context.Context, log logger.Logger, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Warn(ctx, "Failed to cleanup temp file %s: %v", p, err)
			continue
		}
		log.Debug(ctx, "Cleaned up temp file: %s", p)
	}
}
