package official

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
)

func serve(t *testing.T, body string) (*httptest.Server, *string) {
	t.Helper()
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requested
}

func TestNBA_FindGame(t *testing.T) {
	server, _ := serve(t, `{"leagueSchedule":{"gameDates":[
		{"gameDate":"01/14/2024 00:00:00","games":[{"gameId":"0022300540","homeTeam":{"teamTricode":"LAL"},"awayTeam":{"teamTricode":"BOS"}}]},
		{"gameDate":"01/15/2024 00:00:00","games":[
			{"gameId":"0022300554","homeTeam":{"teamTricode":"GSW"},"awayTeam":{"teamTricode":"MEM"}},
			{"gameId":"0022300555","homeTeam":{"teamTricode":"LAL"},"awayTeam":{"teamTricode":"BOS"}}
		]}
	]}}`)

	finder := NewNBA(server.URL, nil, zap.NewNop())

	got, err := finder.FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "LAL", AwayTeamAbbr: "BOS", GameDate: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.OfficialGame{GameID: "0022300555", HomeSlug: "lal", AwaySlug: "bos"}, got)

	// ESPN's short code for Golden State reconciles to GSW.
	got, err = finder.FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "GS", AwayTeamAbbr: "MEM", GameDate: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "0022300554", got.GameID)

	_, err = finder.FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "MIA", AwayTeamAbbr: "NYK", GameDate: "2024-01-15",
	})
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestNHL_FindGame(t *testing.T) {
	server, requested := serve(t, `{"games":[
		{"id":2023020700,"homeTeam":{"abbrev":"TOR"},"awayTeam":{"abbrev":"BOS"}},
		{"id":2023020701,"homeTeam":{"abbrev":"UTA"},"awayTeam":{"abbrev":"LAK"}}
	]}`)

	finder := NewNHL(server.URL, nil, zap.NewNop())

	got, err := finder.FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "TOR", AwayTeamAbbr: "BOS", GameDate: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "/score/2024-01-15", *requested)
	assert.Equal(t, &domain.OfficialGame{GameID: "2023020700", HomeSlug: "tor", AwaySlug: "bos"}, got)

	// Relocated franchise and ESPN short code both reconcile.
	got, err = finder.FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "ARI", AwayTeamAbbr: "LA", GameDate: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2023020701", got.GameID)
}

func TestNHL_FindGame_SingleTeamFallback(t *testing.T) {
	server, _ := serve(t, `{"games":[
		{"id":2023020700,"homeTeam":{"abbrev":"TOR"},"awayTeam":{"abbrev":"BOS"}}
	]}`)

	got, err := NewNHL(server.URL, nil, zap.NewNop()).FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "TOR", AwayTeamAbbr: "MTL", GameDate: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2023020700", got.GameID)
}

func TestMLB_FindGame(t *testing.T) {
	server, requested := serve(t, `{"dates":[{"date":"2024-06-01","games":[
		{"gamePk":745001,"teams":{"home":{"team":{"name":"Boston Red Sox","teamName":"Red Sox","abbreviation":"BOS"}},"away":{"team":{"name":"Chicago White Sox","teamName":"White Sox","abbreviation":"CWS"}}}}
	]}]}`)

	got, err := NewMLB(server.URL, nil, zap.NewNop()).FindGame(context.Background(), domain.GameInfo{
		HomeTeamAbbr: "BOS", AwayTeamAbbr: "CHW", GameDate: "2024-06-01",
	})
	require.NoError(t, err)
	assert.Contains(t, *requested, "/schedule?")
	assert.Contains(t, *requested, "date=2024-06-01")
	assert.Equal(t, &domain.OfficialGame{GameID: "745001", HomeSlug: "red-sox", AwaySlug: "white-sox"}, got)
}

func TestFinders_TransportError(t *testing.T) {
	failing := transport.FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return nil, transport.ErrStatus
	})

	finders := NewFinders(Config{}, failing, zap.NewNop())
	require.Len(t, finders, 3)

	for id, f := range finders {
		_, err := f.FindGame(context.Background(), domain.GameInfo{
			HomeTeamAbbr: "A", AwayTeamAbbr: "B", GameDate: "2024-01-15",
		})
		assert.Error(t, err, id)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "red-sox", slugify("Red  Sox"))
	assert.Equal(t, "blue-jays", mlbSlug("", "Toronto Blue Jays"))
}
