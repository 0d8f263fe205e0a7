package media

import (
	"context"
	"time"
)

// Media wraps the ffmpeg/ffprobe operations the pipeline needs.
type Media interface {
	// ExtractAudio writes the audio track of videoPath to the temp directory
	// in the given format (mp3, wav, or any extension ffmpeg understands).
	ExtractAudio(ctx context.Context, videoPath, format string) (string, error)
	// Split cuts audioPath into consecutive files of at most segment length.
	// The caller owns the returned files.
	Split(ctx context.Context, audioPath string, segment time.Duration) ([]string, error)
	// Duration probes the length of a media file in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// ToWAV16k converts any audio file to 16 kHz mono PCM for whisper.cpp.
	ToWAV16k(ctx context.Context, audioPath string) (string, error)
}
