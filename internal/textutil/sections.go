package textutil

import "strings"

// Section names produced by ParseSections.
const (
	SectionOverview   = "overview"
	SectionKeyPoints  = "key_points"
	SectionDetails    = "details"
	SectionConclusion = "conclusion"
	SectionMain       = "main"
)

// sectionRules is evaluated in order: a line matching keywords of several
// sections is classified by the first rule that matches. A line mentioning
// both "examples" and "conclusion" is therefore a details header.
var sectionRules = []struct {
	name     string
	keywords []string
}{
	{SectionOverview, []string{"overview", "introduction"}},
	{SectionKeyPoints, []string{"key points", "main ideas", "main points"}},
	{SectionDetails, []string{"details", "examples"}},
	{SectionConclusion, []string{"conclusion", "takeaway", "summary"}},
}

// ParseSections classifies the lines of a generated summary into named
// sections. Header lines are consumed as delimiters, blank lines are
// dropped, and text before the first header belongs to the overview.
func ParseSections(summary string) map[string]string {
	sections := make(map[string]string)
	current := SectionOverview
	var content []string

	flush := func() {
		if len(content) > 0 {
			sections[current] = strings.Join(content, "\n")
		}
	}

	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if name, ok := matchSection(line); ok {
			flush()
			current = name
			content = nil
			continue
		}
		content = append(content, line)
	}
	flush()

	return sections
}

func matchSection(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, rule := range sectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name, true
			}
		}
	}
	return "", false
}
