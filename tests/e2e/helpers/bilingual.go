package helpers

import (
	"fmt"
	"strings"
)

// WeSign ships a Hebrew-first UI with an English fallback, so every
// text-based locator has to match both labels. These helpers build the
// comma-joined fallback chains the page objects use.

// TextSelector returns a locator string matching any of the given elements
// carrying either the Hebrew or the English label.
func TextSelector(elements []string, hebrew, english string) string {
	parts := make([]string, 0, len(elements)*2)
	for _, el := range elements {
		if hebrew != "" {
			parts = append(parts, fmt.Sprintf("%s:has-text('%s')", el, hebrew))
		}
		if english != "" {
			parts = append(parts, fmt.Sprintf("%s:has-text('%s')", el, english))
		}
	}
	return strings.Join(parts, ", ")
}

// ButtonSelector is TextSelector for the common button/anchor case.
func ButtonSelector(hebrew, english string) string {
	return TextSelector([]string{"button", "a", "[role='button']"}, hebrew, english)
}

// ContainsEither reports whether s contains the Hebrew or English needle.
func ContainsEither(s, hebrew, english string) bool {
	if hebrew != "" && strings.Contains(s, hebrew) {
		return true
	}
	return english != "" && strings.Contains(strings.ToLower(s), strings.ToLower(english))
}
