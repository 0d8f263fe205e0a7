package output

import (
	"context"
	"time"
)

// Writer persists rendered summaries in the output directory.
type Writer interface {
	// WriteMarkdown writes {title}_{timestamp}.md and returns its path.
	WriteMarkdown(ctx context.Context, title, markdown string, at time.Time) (string, error)
	// WriteDocx writes {title}_{timestamp}.docx next to the markdown file.
	WriteDocx(ctx context.Context, title, markdown string, at time.Time) (string, error)
}

// Synthesizer turns summary text into an mp3. It never fails the caller:
// when synthesis is unavailable or errors it logs a warning and returns "".
type Synthesizer interface {
	Synthesize(ctx context.Context, text, title string, at time.Time) string
}
