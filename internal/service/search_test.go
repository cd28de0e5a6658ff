package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/players"
	"github.com/fortuna/boxfinder/internal/resolver"
)

type stubScoreboards map[string][]domain.GameInfo

func (s stubScoreboards) FetchGamesByDate(ctx context.Context, leagueID, isoDate string) espn.Scoreboard {
	return espn.Scoreboard{League: leagueID, Date: isoDate, Games: s[leagueID]}
}

type stubPlayers struct {
	team *domain.PlayerTeam
}

func (s stubPlayers) LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
	if s.team == nil {
		return nil, players.ErrNotFound
	}
	return s.team, nil
}

var lakersCeltics = domain.GameInfo{
	ExternalGameID: "401585123",
	HomeTeam:       "Los Angeles Lakers",
	AwayTeam:       "Boston Celtics",
	HomeTeamAbbr:   "LAL",
	AwayTeamAbbr:   "BOS",
	GameDate:       "2024-01-15",
	League:         "NBA",
}

func newService(boards stubScoreboards, lookup players.Lookup, m *metrics.Metrics) *SearchService {
	r := resolver.New(boards, nil, nil, m, resolver.Options{}, zap.NewNop())
	return NewSearchService(r, lookup, m, zap.NewNop())
}

func countProvider(links []domain.BoxScoreLink, provider string) int {
	n := 0
	for _, l := range links {
		if l.Provider == provider {
			n++
		}
	}
	return n
}

func TestSearch_TeamQuery(t *testing.T) {
	svc := newService(stubScoreboards{"nba": {lakersCeltics}}, nil, nil)

	result, err := svc.Search(context.Background(), domain.SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Links)
	first := result.Links[0]
	assert.Equal(t, "ESPN", first.Provider)
	assert.Equal(t, domain.LinkDirect, first.LinkType)
	assert.Contains(t, first.URL, "/boxscore/_/gameId/401585123")

	assert.Equal(t, 1, countProvider(result.Links, "NBA.com"))
	assert.Equal(t, 1, countProvider(result.Links, "Basketball-Reference"))
	assert.Equal(t, 1, countProvider(result.Links, "SofaScore"))

	assert.Equal(t, "Monday, January 15, 2024", result.MatchInfo.FormattedDate)
	assert.Equal(t, "Lakers", result.MatchInfo.TeamName)
	assert.False(t, result.MatchInfo.ResolvedFromPlayer)
}

func TestSearch_PlayerQuery(t *testing.T) {
	lookup := stubPlayers{team: &domain.PlayerTeam{PlayerName: "LeBron James", TeamName: "Los Angeles Lakers", League: "nba"}}
	svc := newService(stubScoreboards{"nba": {lakersCeltics}}, lookup, nil)

	result, err := svc.Search(context.Background(), domain.SearchQuery{PlayerName: "LeBron James", GameDate: "2024-01-15"})
	require.NoError(t, err)

	assert.True(t, result.MatchInfo.ResolvedFromPlayer)
	assert.Contains(t, result.MatchInfo.TeamName, "(from LeBron James)")
	assert.Equal(t, "Los Angeles Lakers (from LeBron James)", result.MatchInfo.TeamName)
	assert.Contains(t, result.Links[0].URL, "401585123")
}

func TestSearch_PlayerLookupFails(t *testing.T) {
	svc := newService(stubScoreboards{"nba": {lakersCeltics}}, stubPlayers{}, nil)

	result, err := svc.Search(context.Background(), domain.SearchQuery{PlayerName: "Nobody Special", GameDate: "2024-01-15"})
	require.NoError(t, err)

	assert.False(t, result.MatchInfo.ResolvedFromPlayer)
	assert.Empty(t, result.MatchInfo.TeamName)
	for _, l := range result.Links {
		assert.Equal(t, domain.LinkSearch, l.LinkType)
	}
	// One ESPN search per default league plus the web fallback.
	assert.Len(t, result.Links, 5)
	assert.Contains(t, result.Links[0].URL, "Nobody%20Special")
}

func TestSearch_NoGames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := newService(stubScoreboards{}, nil, m)

	result, err := svc.Search(context.Background(), domain.SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"})
	require.NoError(t, err)

	for _, l := range result.Links {
		assert.NotEqual(t, domain.LinkDirect, l.LinkType)
	}
	last := result.Links[len(result.Links)-1]
	assert.Equal(t, "Google", last.Provider)
	assert.True(t, strings.HasPrefix(last.URL, "https://www.google.com/search?q="))
	assert.Equal(t, 1, countProvider(result.Links, "Google"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("unresolved")))
}

func TestSearch_Validation(t *testing.T) {
	svc := newService(stubScoreboards{}, nil, nil)

	tests := []struct {
		name  string
		query domain.SearchQuery
		field string
	}{
		{"blank names", domain.SearchQuery{TeamName: "  ", PlayerName: "\t", GameDate: "2024-01-15"}, "teamName"},
		{"missing date", domain.SearchQuery{TeamName: "Lakers"}, "gameDate"},
		{"bad date", domain.SearchQuery{TeamName: "Lakers", GameDate: "01/15/2024"}, "gameDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.query)
			require.Error(t, err)

			var verrs domain.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.Fields(), tt.field)
		})
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := newService(stubScoreboards{"nba": {lakersCeltics}}, nil, nil)
	q := domain.SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"}

	a, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	b, err := svc.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSearch_CancelledContext(t *testing.T) {
	svc := newService(stubScoreboards{"nba": {lakersCeltics}}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, domain.SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"})
	assert.True(t, errors.Is(err, context.Canceled))
}
