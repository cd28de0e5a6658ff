package reconciliation

import "strings"

// minFragmentLen guards the substring rules: shorter free-text fragments
// ("LA", "NY") only ever match an exact abbreviation.
const minFragmentLen = 4

// MatchesTeam reports whether a free-text search term refers to a team.
// Rules are tried from most to least precise; the first hit wins.
func MatchesTeam(searchTerm, fullName, abbr, displayName string) bool {
	term := Normalize(searchTerm)
	if term == "" {
		return false
	}

	// 1. exact abbreviation
	if a := Normalize(abbr); a != "" && term == a {
		return true
	}

	name := displayName
	if strings.TrimSpace(name) == "" {
		name = fullName
	}
	full := Normalize(name)
	nick := Normalize(Nickname(name))

	// 2. nickname
	if nick != "" && term == nick {
		return true
	}

	// 3. full name
	if full != "" && term == full {
		return true
	}

	if full == "" || len(term) < minFragmentLen {
		return false
	}

	// 4./5. containment either way
	if strings.Contains(full, term) || strings.Contains(term, full) {
		return true
	}

	// 6. nickname inside a longer term ("lakers game tonight")
	return len(nick) >= minFragmentLen && strings.Contains(term, nick)
}
