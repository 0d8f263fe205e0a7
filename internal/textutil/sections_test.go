package textutil

import (
	"reflect"
	"testing"
)

func TestParseSections(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    map[string]string
	}{
		{
			name: "three headed paragraphs",
			summary: "## Overview\nThe talk covers Go.\nIt is short.\n\n" +
				"## Key Points\n- Interfaces\n- Errors\n\n" +
				"## Conclusion\nGo is pragmatic.",
			want: map[string]string{
				SectionOverview:   "The talk covers Go.\nIt is short.",
				SectionKeyPoints:  "- Interfaces\n- Errors",
				SectionConclusion: "Go is pragmatic.",
			},
		},
		{
			name:    "text before first header is overview",
			summary: "Intro line.\n1. Main Ideas\nIdea one.",
			want: map[string]string{
				SectionOverview:  "Intro line.",
				SectionKeyPoints: "Idea one.",
			},
		},
		{
			name:    "priority order resolves ambiguous header",
			summary: "Examples and conclusion\nA worked example.",
			want: map[string]string{
				SectionDetails: "A worked example.",
			},
		},
		{
			name:    "empty header section omitted",
			summary: "Overview\n\nImportant Details\nFact.\nTakeaways\nDone.",
			want: map[string]string{
				SectionDetails:    "Fact.",
				SectionConclusion: "Done.",
			},
		},
		{
			name:    "case insensitive and trimmed",
			summary: "   **KEY POINTS**   \n   spaced point   ",
			want: map[string]string{
				SectionKeyPoints: "spaced point",
			},
		},
		{
			name:    "empty input",
			summary: "",
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSections(tt.summary)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSections() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
