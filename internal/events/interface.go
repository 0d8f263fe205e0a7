// Package events publishes run completion events to Kafka.
package events

import (
	"context"
	"time"
)

// SummaryCompleted is emitted after the markdown summary has been written.
type SummaryCompleted struct {
	ID           string    `json:"id"`
	RunID        string    `json:"run_id"`
	Title        string    `json:"title"`
	Source       string    `json:"source,omitempty"`
	Style        string    `json:"style"`
	WordCount    int       `json:"word_count"`
	MarkdownPath string    `json:"markdown_path"`
	DocxPath     string    `json:"docx_path,omitempty"`
	AudioPath    string    `json:"audio_path,omitempty"`
	Degraded     bool      `json:"degraded"`
	CreatedAt    time.Time `json:"created_at"`
}

// Publisher delivers completion events. A disabled publisher only logs them.
type Publisher interface {
	PublishSummaryCompleted(ctx context.Context, event SummaryCompleted) error
	Close() error
}
