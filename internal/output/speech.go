package output

import (
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/internal/summarizer"
	"github.com/nguyentantai21042004/yt-summarize/internal/textutil"
)

// SpeechText condenses a summary into text suited for speech synthesis.
func SpeechText(res summarizer.Result, title string) string {
	intro := "This is a summary of the video titled: " + title + ". "

	if res.Style != summarizer.ResultDetailed || !hasDetailedSection(res.Sections) {
		return intro + res.Summary
	}

	parts := []string{intro}
	if s := res.Sections[textutil.SectionOverview]; s != "" {
		parts = append(parts, "Overview: "+s)
	}
	if s := res.Sections[textutil.SectionKeyPoints]; s != "" {
		parts = append(parts, "The key points are: "+s)
	}
	if s := res.Sections[textutil.SectionConclusion]; s != "" {
		parts = append(parts, "In conclusion: "+s)
	}
	return strings.Join(parts, " ")
}
