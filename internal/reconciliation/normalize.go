package reconciliation

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, folds diacritics and drops everything that is not a
// letter or digit: "Montréal Canadiens" -> "montrealcanadiens".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// twoWordNicknames are checked before falling back to the last word.
var twoWordNicknames = []string{
	"trail blazers",
	"red sox",
	"white sox",
	"blue jays",
	"maple leafs",
	"red wings",
	"blue jackets",
	"golden knights",
	"red bulls",
	"hockey club",
}

// Nickname extracts the team nickname from a display name:
// "Portland Trail Blazers" -> "trail blazers", "Los Angeles Lakers" -> "lakers".
func Nickname(displayName string) string {
	lower := strings.ToLower(strings.TrimSpace(displayName))
	if lower == "" {
		return ""
	}

	for _, nick := range twoWordNicknames {
		if strings.HasSuffix(lower, nick) {
			return nick
		}
	}

	fields := strings.Fields(lower)
	return fields[len(fields)-1]
}
