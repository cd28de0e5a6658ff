package league

import (
	"strconv"
	"strings"
	"time"
)

// Supported league identifiers.
const (
	NBA = "nba"
	MLB = "mlb"
	NFL = "nfl"
	NHL = "nhl"
	MLS = "mls"
)

// League is the static per-league configuration: where its scoreboard lives on
// ESPN, how its official and reference sites shape URLs, and which team-name
// fragments identify it in free text.
type League struct {
	ID        string
	Code      string
	SportPath string // ESPN API path, e.g. "basketball/nba"
	Site      string // ESPN web segment, e.g. "nba"
	Soccer    bool

	OfficialSite string
	// {date} is replaced with the ISO date.
	OfficialBrowse string
	// {away} {home} {id} {yyyy} {mm} {dd}; empty when the league has no per-game official page.
	OfficialGame string

	ReferenceSite  string
	ReferenceIndex string // date index; month/day/year are appended as query params

	Teams []string
}

// OfficialBrowseURL is the league site's "scores on this date" page.
func (l League) OfficialBrowseURL(isoDate string) string {
	if l.OfficialBrowse == "" {
		return ""
	}
	return strings.ReplaceAll(l.OfficialBrowse, "{date}", isoDate)
}

// OfficialGameURL fills the official per-game template.
func (l League) OfficialGameURL(gameID, awaySlug, homeSlug string, date time.Time) string {
	if l.OfficialGame == "" {
		return ""
	}
	r := strings.NewReplacer(
		"{away}", awaySlug,
		"{home}", homeSlug,
		"{id}", gameID,
		"{yyyy}", date.Format("2006"),
		"{mm}", date.Format("01"),
		"{dd}", date.Format("02"),
	)
	return r.Replace(l.OfficialGame)
}

// ReferenceIndexURL is the Sports-Reference box score index for a date.
func (l League) ReferenceIndexURL(date time.Time) string {
	if l.ReferenceIndex == "" {
		return ""
	}
	return l.ReferenceIndex +
		"?month=" + strconv.Itoa(int(date.Month())) +
		"&day=" + strconv.Itoa(date.Day()) +
		"&year=" + strconv.Itoa(date.Year())
}

// Get returns the league for an id (either case).
func Get(id string) (League, bool) {
	l, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return l, ok
}

// All returns every supported league in detection order.
func All() []League {
	out := make([]League, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

var order = []string{NBA, MLB, NFL, NHL, MLS}

var byID = map[string]League{
	NBA: {
		ID:             NBA,
		Code:           "NBA",
		SportPath:      "basketball/nba",
		Site:           "nba",
		OfficialSite:   "NBA.com",
		OfficialBrowse: "https://www.nba.com/games?date={date}",
		OfficialGame:   "https://www.nba.com/game/{away}-vs-{home}-{id}/box-score",
		ReferenceSite:  "Basketball-Reference",
		ReferenceIndex: "https://www.basketball-reference.com/boxscores/",
		Teams:          nbaTeams,
	},
	MLB: {
		ID:             MLB,
		Code:           "MLB",
		SportPath:      "baseball/mlb",
		Site:           "mlb",
		OfficialSite:   "MLB.com",
		OfficialBrowse: "https://www.mlb.com/scores/{date}",
		OfficialGame:   "https://www.mlb.com/gameday/{away}-vs-{home}/{yyyy}/{mm}/{dd}/{id}/final/box-score",
		ReferenceSite:  "Baseball-Reference",
		ReferenceIndex: "https://www.baseball-reference.com/boxes/",
		Teams:          mlbTeams,
	},
	NFL: {
		ID:             NFL,
		Code:           "NFL",
		SportPath:      "football/nfl",
		Site:           "nfl",
		OfficialSite:   "NFL.com",
		OfficialBrowse: "https://www.nfl.com/scores/",
		Teams:          nflTeams,
	},
	NHL: {
		ID:             NHL,
		Code:           "NHL",
		SportPath:      "hockey/nhl",
		Site:           "nhl",
		OfficialSite:   "NHL.com",
		OfficialBrowse: "https://www.nhl.com/scores/{date}",
		OfficialGame:   "https://www.nhl.com/gamecenter/{away}-vs-{home}/{yyyy}/{mm}/{dd}/{id}/boxscore",
		ReferenceSite:  "Hockey-Reference",
		ReferenceIndex: "https://www.hockey-reference.com/boxscores/",
		Teams:          nhlTeams,
	},
	MLS: {
		ID:             MLS,
		Code:           "MLS",
		SportPath:      "soccer/usa.1",
		Site:           "soccer",
		Soccer:         true,
		OfficialSite:   "MLSsoccer.com",
		OfficialBrowse: "https://www.mlssoccer.com/schedule/scores",
		Teams:          mlsTeams,
	},
}
