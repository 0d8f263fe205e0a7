package textutil

import (
	"regexp"
	"strings"
)

var reChapter = regexp.MustCompile(`^\[(\d{1,2}:\d{2}:\d{2})\](.+)$`)

// Chapter is one entry of a generated chapter listing.
type Chapter struct {
	Timestamp   string `json:"timestamp"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ParseChapters extracts "[H:MM:SS] Title" entries from text. Lines after a
// timestamp line accumulate into that chapter's description, each followed
// by a space. Lines before the first timestamp are discarded.
func ParseChapters(text string) []Chapter {
	var (
		chapters []Chapter
		current  *Chapter
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := reChapter.FindStringSubmatch(line); m != nil {
			if current != nil {
				chapters = append(chapters, *current)
			}
			current = &Chapter{Timestamp: m[1], Title: strings.TrimSpace(m[2])}
			continue
		}
		if current != nil {
			current.Description += line + " "
		}
	}
	if current != nil {
		chapters = append(chapters, *current)
	}
	return chapters
}
