package links

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/boxfinder/internal/domain"
)

var lakersGame = &domain.GameInfo{
	ExternalGameID: "401585123",
	HomeTeam:       "Los Angeles Lakers",
	AwayTeam:       "Boston Celtics",
	HomeTeamAbbr:   "LAL",
	AwayTeamAbbr:   "BOS",
	GameDate:       "2024-01-15",
	League:         "NBA",
}

func lakersInput() Input {
	return Input{
		Query:      domain.SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"},
		SearchTerm: "Lakers",
		Leagues:    []string{"nba"},
		Game:       lakersGame,
	}
}

func providers(links []domain.BoxScoreLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Provider
	}
	return out
}

func TestBuild_ResolvedWithoutSecondary(t *testing.T) {
	links := Build(lakersInput())

	require.Len(t, links, 6)
	assert.Equal(t, []string{"ESPN", "ESPN", "ESPN", "NBA.com", "Basketball-Reference", "SofaScore"}, providers(links))

	assert.Equal(t, "https://www.espn.com/nba/boxscore/_/gameId/401585123", links[0].URL)
	assert.Equal(t, "https://www.espn.com/nba/game/_/gameId/401585123", links[1].URL)
	assert.Equal(t, "https://www.espn.com/nba/playbyplay/_/gameId/401585123", links[2].URL)
	for _, l := range links[:3] {
		assert.Equal(t, domain.LinkDirect, l.LinkType)
		assert.Equal(t, domain.ProviderThirdParty, l.ProviderType)
	}

	assert.Equal(t, "https://www.nba.com/games?date=2024-01-15", links[3].URL)
	assert.Equal(t, domain.ProviderOfficial, links[3].ProviderType)
	assert.Equal(t, domain.LinkSearch, links[3].LinkType)

	assert.Equal(t, "https://www.basketball-reference.com/boxscores/?month=1&day=15&year=2024", links[4].URL)
	assert.Equal(t, "https://www.sofascore.com/search?q=Lakers+NBA", links[5].URL)

	assert.Equal(t, "espn-0", links[0].ID)
	assert.Equal(t, "nba-com-3", links[3].ID)
	assert.Equal(t, "basketball-reference-4", links[4].ID)
	assert.Equal(t, "sofascore-5", links[5].ID)
}

func TestBuild_OfficialDirectComesFirst(t *testing.T) {
	in := lakersInput()
	in.Official = &domain.OfficialGame{GameID: "0022300555", HomeSlug: "lal", AwaySlug: "bos"}
	in.ReferenceURL = "https://www.basketball-reference.com/boxscores/202401150LAL.html"

	links := Build(in)

	require.Len(t, links, 6)
	assert.Equal(t, []string{"NBA.com", "ESPN", "ESPN", "ESPN", "Basketball-Reference", "SofaScore"}, providers(links))
	assert.Equal(t, "https://www.nba.com/game/bos-vs-lal-0022300555/box-score", links[0].URL)
	assert.Equal(t, domain.LinkDirect, links[0].LinkType)
	assert.Equal(t, domain.ProviderOfficial, links[0].ProviderType)
	assert.Equal(t, domain.LinkDirect, links[4].LinkType)
	assert.Equal(t, in.ReferenceURL, links[4].URL)
}

func TestBuild_OrderingInvariant(t *testing.T) {
	in := lakersInput()
	in.Official = &domain.OfficialGame{GameID: "1", HomeSlug: "lal", AwaySlug: "bos"}

	links := Build(in)

	rank := func(l domain.BoxScoreLink) int {
		switch {
		case l.LinkType == domain.LinkDirect && l.ProviderType == domain.ProviderOfficial:
			return 0
		case l.LinkType == domain.LinkDirect:
			return 1
		default:
			return 2
		}
	}
	for i := 1; i < len(links); i++ {
		assert.LessOrEqual(t, rank(links[i-1]), rank(links[i]), "link %d out of order", i)
	}
}

func TestBuild_ReferenceScrapedDropsIndex(t *testing.T) {
	in := lakersInput()
	in.ReferenceURL = "https://www.basketball-reference.com/boxscores/202401150LAL.html"

	links := Build(in)

	assert.Equal(t, []string{"ESPN", "ESPN", "ESPN", "Basketball-Reference", "NBA.com", "SofaScore"}, providers(links))
	assert.Equal(t, domain.LinkDirect, links[3].LinkType)
}

func TestBuild_SoccerPaths(t *testing.T) {
	links := Build(Input{
		Query:      domain.SearchQuery{TeamName: "Galaxy", GameDate: "2024-05-04"},
		SearchTerm: "Galaxy",
		Leagues:    []string{"mls"},
		Game: &domain.GameInfo{
			ExternalGameID: "700",
			HomeTeam:       "LA Galaxy",
			AwayTeam:       "Seattle Sounders FC",
			GameDate:       "2024-05-04",
			League:         "MLS",
		},
	})

	assert.Equal(t, "https://www.espn.com/soccer/match/_/gameId/700", links[0].URL)
	assert.Equal(t, "https://www.espn.com/soccer/matchstats/_/gameId/700", links[1].URL)
	assert.Equal(t, "https://www.espn.com/soccer/commentary/_/gameId/700", links[2].URL)
	assert.Equal(t, "MLSsoccer.com", links[3].Provider)
}

func TestBuild_Unresolved(t *testing.T) {
	links := Build(Input{
		Query:      domain.SearchQuery{TeamName: "Springfield Isotopes", GameDate: "2024-01-15"},
		SearchTerm: "Springfield Isotopes",
		Leagues:    []string{"nba", "mlb", "nfl", "nhl"},
	})

	require.Len(t, links, 5)
	for _, l := range links {
		assert.Equal(t, domain.LinkSearch, l.LinkType)
	}

	assert.Equal(t, "https://www.espn.com/search/_/q/Springfield%20Isotopes%20NBA%202024-01-15", links[0].URL)
	assert.Equal(t, "NHL", links[3].League)

	google := links[4]
	assert.Equal(t, "Google", google.Provider)
	assert.Equal(t, "ALL", google.League)
	assert.True(t, strings.HasPrefix(google.URL, "https://www.google.com/search?q="))
	assert.Contains(t, google.URL, "Monday%2C+January+15%2C+2024")
	assert.Contains(t, google.URL, "box+score")
	assert.Equal(t, "google-4", google.ID)
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, Build(lakersInput()), Build(lakersInput()))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "nba-com", slug("NBA.com"))
	assert.Equal(t, "basketball-reference", slug("Basketball-Reference"))
	assert.Equal(t, "mlssoccer-com", slug("MLSsoccer.com"))
}
