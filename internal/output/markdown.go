package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
	"github.com/nguyentantai21042004/yt-summarize/internal/transcribe"
)

// Document is everything needed to render one summary.
type Document struct {
	Title             string
	Source            string
	GeneratedAt       time.Time
	Summary           summarizer.Result
	Transcript        transcribe.Result
	Chapters          []textutil.Chapter
	IncludeTranscript bool
}

var detailedSections = []struct {
	key     string
	heading string
}{
	{textutil.SectionOverview, "Overview"},
	{textutil.SectionKeyPoints, "Key Points"},
	{textutil.SectionDetails, "Important Details"},
	{textutil.SectionConclusion, "Conclusion"},
}

// RenderMarkdown builds the markdown document. The output depends only on
// doc, so rendering the same document twice yields identical bytes.
func RenderMarkdown(doc Document) string {
	lines := []string{
		"# " + doc.Title,
		"",
		"**Generated on:** " + doc.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
	if doc.Source != "" {
		lines = append(lines, fmt.Sprintf("**Source:** [%s](%s)", doc.Source, doc.Source))
	}
	if doc.Transcript.Duration > 0 {
		lines = append(lines, fmt.Sprintf("**Duration:** %d minutes", int(doc.Transcript.Duration/60)))
	}
	if doc.Transcript.Language != "" {
		lines = append(lines, "**Language:** "+DisplayLanguage(doc.Transcript.Language))
	}
	lines = append(lines, "", "---", "")

	if len(doc.Chapters) > 0 {
		lines = append(lines, "## Table of Contents", "")
		for _, ch := range doc.Chapters {
			lines = append(lines, fmt.Sprintf("- [%s] **%s**", ch.Timestamp, ch.Title))
			if desc := strings.TrimSpace(ch.Description); desc != "" {
				lines = append(lines, "  - "+desc)
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, summaryBody(doc.Summary)...)

	lines = append(lines,
		"## Statistics",
		"",
		fmt.Sprintf("- **Summary word count:** %d", doc.Summary.WordCount),
		fmt.Sprintf("- **Transcript word count:** %d", textutil.WordCount(doc.Transcript.Text)),
		"",
	)

	if doc.IncludeTranscript {
		lines = append(lines, "---", "", "## Full Transcript", "", transcribe.FormatWithTimestamps(doc.Transcript))
	}

	return strings.Join(lines, "\n")
}

func summaryBody(res summarizer.Result) []string {
	var lines []string
	if res.Style == summarizer.ResultDetailed && hasDetailedSection(res.Sections) {
		for _, s := range detailedSections {
			if text := res.Sections[s.key]; text != "" {
				lines = append(lines, "## "+s.heading, "", text, "")
			}
		}
		return lines
	}

	lines = append(lines, "## Summary", "")
	if res.Note != "" {
		lines = append(lines, "> **Note:** "+res.Note, "")
	}
	return append(lines, res.Summary, "")
}

func hasDetailedSection(sections map[string]string) bool {
	for _, s := range detailedSections {
		if sections[s.key] != "" {
			return true
		}
	}
	return false
}
