package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/errs"
)

// Style is the requested summary flavour.
type Style string

const (
	StyleBrief    Style = "brief"
	StyleDetailed Style = "detailed"
	StyleBullet   Style = "bullet"
)

// Result styles. Every style other than detailed renders as a single block.
const (
	ResultDetailed = "detailed"
	ResultSimple   = "simple"
)

// Styles lists the accepted style names in display order.
var Styles = []Style{StyleBrief, StyleDetailed, StyleBullet}

// ParseStyle validates a user supplied style name.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Styles {
		if style == known {
			return style, nil
		}
	}
	return "", errs.Wrap(errs.ErrInput, "summarize", "parse style", fmt.Sprintf("unknown style %q (want brief, detailed or bullet)", s), nil)
}

// Result is a finished summary. Note is set only when the result came from
// a degraded path.
type Result struct {
	Summary   string            `json:"summary"`
	Style     string            `json:"style"`
	WordCount int               `json:"word_count"`
	Sections  map[string]string `json:"sections"`
	Note      string            `json:"note,omitempty"`
}

// Degraded reports whether the result was produced by a fallback path.
func (r Result) Degraded() bool {
	return r.Note != ""
}
