package video

import "context"

// Video is a local video file ready for audio extraction. Downloaded videos
// belong to the run and are removed afterwards; local files never are.
type Video struct {
	Path       string
	Title      string
	SourceURL  string
	Downloaded bool
}

// Acquirer resolves a YouTube URL or local path to a local video file.
type Acquirer interface {
	Acquire(ctx context.Context, input string) (Video, error)
}
