package textutil

import "testing"

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Video: Part 1/2?", "My Video Part 12"},
		{"keep-this_one  ", "keep-this_one"},
		{"Ünïcode Títle!", "Ünïcode Títle"},
		{"***", ""},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
