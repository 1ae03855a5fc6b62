package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatName normalizes a display name: trims, collapses inner whitespace
// and title-cases each word ("  chicken  BIRYANI " -> "Chicken Biryani").
// Applying it twice yields the same string.
func FormatName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	// cases.Caser carries state, so build one per call
	return cases.Title(language.English).String(strings.Join(fields, " "))
}
