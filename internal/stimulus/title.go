package stimulus

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayTitle derives a human-readable title from a catalog stimulus name
// such as "Lit_NorthWind" or "PopSci_Caveman". The genre prefix before the
// first underscore is dropped and camel-case runs are split into words.
func DisplayTitle(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Unknown Stimulus"
	}
	if idx := strings.Index(trimmed, "_"); idx >= 0 && idx+1 < len(trimmed) {
		trimmed = trimmed[idx+1:]
	}

	var words strings.Builder
	prev := ' '
	for _, r := range trimmed {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if words.Len() > 0 && prev != ' ' {
				words.WriteRune(' ')
				prev = ' '
			}
		case unicode.IsUpper(r) && words.Len() > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			words.WriteRune(' ')
			words.WriteRune(r)
			prev = r
		default:
			words.WriteRune(r)
			prev = r
		}
	}

	title := strings.TrimSpace(words.String())
	if title == "" {
		return "Unknown Stimulus"
	}
	return cases.Title(language.Und, cases.NoLower).String(title)
}
