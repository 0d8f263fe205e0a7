package transcribe

import (
	"context"
	"time"
)

// Segment is a time-stamped slice of a transcript, offsets in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the outcome of transcribing one audio asset. Language and
// Duration are zero when the backend did not report them.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
}

// Backend is a speech-to-text service that accepts a single audio file no
// larger than its upload limit.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audioPath, language string) (Result, error)
}

// Splitter cuts audio into consecutive fixed-length files.
type Splitter interface {
	Split(ctx context.Context, audioPath string, segment time.Duration) ([]string, error)
}

// Transcriber turns an audio asset of any size into a Result, splitting it
// when it exceeds the backend upload limit.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (Result, error)
}
