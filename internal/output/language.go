package output

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayLanguage renders a language code such as "de" as its English name.
// Values that are not BCP 47 tags, like the "english" some backends report,
// are returned unchanged.
func DisplayLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
