package textutil

import (
	"reflect"
	"testing"
)

func TestParseChapters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Chapter
	}{
		{
			name: "two chapters with descriptions",
			text: "[00:01:30] Intro\nWelcome text.\n[00:05:00] Deep Dive\nMore text.",
			want: []Chapter{
				{Timestamp: "00:01:30", Title: "Intro", Description: "Welcome text. "},
				{Timestamp: "00:05:00", Title: "Deep Dive", Description: "More text. "},
			},
		},
		{
			name: "preamble discarded and single digit hour",
			text: "Here are the chapters:\n\n[1:02:03]   Late Topic  \nLine one.\nLine two.\n",
			want: []Chapter{
				{Timestamp: "1:02:03", Title: "Late Topic", Description: "Line one. Line two. "},
			},
		},
		{
			name: "chapter without description",
			text: "[00:00:00] Start\n[00:10:00] End",
			want: []Chapter{
				{Timestamp: "00:00:00", Title: "Start"},
				{Timestamp: "00:10:00", Title: "End"},
			},
		},
		{
			name: "no timestamps",
			text: "nothing to see\n[bad] line",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChapters(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseChapters() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
