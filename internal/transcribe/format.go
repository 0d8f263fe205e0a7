package transcribe

import (
	"fmt"
	"strings"
)

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS past the first hour.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatWithTimestamps renders one "[start - end] text" line per segment, or
// the plain text when no segments are available.
func FormatWithTimestamps(res Result) string {
	if len(res.Segments) == 0 {
		return res.Text
	}
	lines := make([]string, 0, len(res.Segments))
	for _, seg := range res.Segments {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s",
			FormatTimestamp(seg.Start), FormatTimestamp(seg.End), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}
