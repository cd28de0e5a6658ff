package reconciliation

import "strings"

// ESPN abbreviations that differ from the league's own site.
var officialAbbreviations = map[string]map[string]string{
	"nba": {
		"GS":   "GSW",
		"SA":   "SAS",
		"NO":   "NOP",
		"NY":   "NYK",
		"UTAH": "UTA",
		"WSH":  "WAS",
		"PHO":  "PHX",
		"BRK":  "BKN",
		"CHO":  "CHA",
	},
	"nhl": {
		"NJ":   "NJD",
		"SJ":   "SJS",
		"TB":   "TBL",
		"LA":   "LAK",
		"UTAH": "UTA",
		"WAS":  "WSH",
		"MON":  "MTL",
		"CLB":  "CBJ",
	},
	"mlb": {
		"CHW": "CWS",
		"ARI": "AZ",
		"OAK": "ATH",
		"WAS": "WSH",
	},
}

// Franchises that moved or were renamed; either code identifies the same club.
var franchiseAliases = map[string][][]string{
	"nhl": {{"ARI", "UTA", "UTAH"}},
	"mlb": {{"OAK", "ATH"}},
	"nba": {{"NJN", "BKN", "BRK"}, {"SEA", "OKC"}},
}

// Sports-Reference team codes where they differ from ESPN.
var referenceAbbreviations = map[string]map[string]string{
	"nba": {
		"BKN":  "BRK",
		"CHA":  "CHO",
		"PHX":  "PHO",
		"GS":   "GSW",
		"SA":   "SAS",
		"NO":   "NOP",
		"NY":   "NYK",
		"UTAH": "UTA",
		"WSH":  "WAS",
	},
	"nhl": {
		"NJ":   "NJD",
		"SJ":   "SJS",
		"TB":   "TBL",
		"LA":   "LAK",
		"UTAH": "UTA",
	},
	"mlb": {
		"LAD": "LAN",
		"NYY": "NYA",
		"NYM": "NYN",
		"CHC": "CHN",
		"CHW": "CHA",
		"SF":  "SFN",
		"SD":  "SDN",
		"STL": "SLN",
		"KC":  "KCA",
		"TB":  "TBA",
		"LAA": "ANA",
		"WSH": "WAS",
		"ATH": "OAK",
	},
}

func normalizeAbbreviation(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

// OfficialAbbreviation converts an ESPN abbreviation to the league site's scheme.
func OfficialAbbreviation(leagueID, abbr string) string {
	abbr = normalizeAbbreviation(abbr)
	if mapped, ok := officialAbbreviations[strings.ToLower(leagueID)][abbr]; ok {
		return mapped
	}
	return abbr
}

// ReferenceAbbreviation converts an ESPN abbreviation to the Sports-Reference code.
func ReferenceAbbreviation(leagueID, abbr string) string {
	abbr = normalizeAbbreviation(abbr)
	if mapped, ok := referenceAbbreviations[strings.ToLower(leagueID)][abbr]; ok {
		return mapped
	}
	return abbr
}

// SameTeam reports whether two abbreviations, possibly from different
// providers, identify the same club in a league.
func SameTeam(leagueID, a, b string) bool {
	a, b = normalizeAbbreviation(a), normalizeAbbreviation(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	oa, ob := OfficialAbbreviation(leagueID, a), OfficialAbbreviation(leagueID, b)
	if oa == ob {
		return true
	}

	for _, group := range franchiseAliases[strings.ToLower(leagueID)] {
		if contains(group, oa) && contains(group, ob) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
