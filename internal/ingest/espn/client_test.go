package espn

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
)

const scoreboardFixture = `{
  "events": [
    {
      "id": "401585183",
      "date": "2024-01-16T03:30Z",
      "name": "Boston Celtics at Los Angeles Lakers",
      "competitions": [{
        "id": "401585183",
        "competitors": [
          {"id": "13", "homeAway": "home", "team": {"id": "13", "abbreviation": "LAL", "displayName": "Los Angeles Lakers", "location": "Los Angeles", "name": "Lakers"}},
          {"id": "2", "homeAway": "away", "team": {"id": "2", "abbreviation": "BOS", "displayName": "Boston Celtics", "location": "Boston", "name": "Celtics"}}
        ]
      }]
    },
    {
      "id": "401585184",
      "name": "broken: only one competitor",
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "team": {"abbreviation": "GS", "displayName": "Golden State Warriors"}}
        ]
      }]
    },
    {
      "id": "401585185",
      "name": "no competitions",
      "competitions": []
    },
    {
      "id": "401585186",
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "team": {"abbreviation": "den", "location": "Denver", "name": "Nuggets"}},
          {"homeAway": "away", "team": {"abbreviation": "mia", "location": "Miami", "name": "Heat"}}
        ]
      }]
    }
  ]
}`

func newStubServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &gotPath
}

func TestClient_FetchGamesByDate(t *testing.T) {
	server, gotPath := newStubServer(t, http.StatusOK, scoreboardFixture)
	client := New(server.URL, nil, zap.NewNop())

	sb := client.FetchGamesByDate(context.Background(), "nba", "2024-01-15")

	assert.Equal(t, "/basketball/nba/scoreboard?dates=20240115", *gotPath)
	require.False(t, sb.Failed())
	require.Len(t, sb.Games, 2)

	assert.Equal(t, domain.GameInfo{
		ExternalGameID: "401585183",
		HomeTeam:       "Los Angeles Lakers",
		AwayTeam:       "Boston Celtics",
		HomeTeamAbbr:   "LAL",
		AwayTeamAbbr:   "BOS",
		GameDate:       "2024-01-15",
		League:         "NBA",
	}, sb.Games[0])

	assert.Equal(t, "Denver Nuggets", sb.Games[1].HomeTeam)
	assert.Equal(t, "MIA", sb.Games[1].AwayTeamAbbr)
}

func TestClient_FetchGamesByDate_SoccerPath(t *testing.T) {
	server, gotPath := newStubServer(t, http.StatusOK, `{"events":[]}`)
	client := New(server.URL, nil, zap.NewNop())

	sb := client.FetchGamesByDate(context.Background(), "MLS", "2024-06-01")
	assert.Equal(t, "/soccer/usa.1/scoreboard?dates=20240601", *gotPath)
	assert.False(t, sb.Failed())
	assert.Empty(t, sb.Games)
}

func TestClient_FetchGamesByDate_SoftFail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "html page", status: http.StatusOK, body: `<html><body>Access denied</body></html>`},
		{name: "malformed json", status: http.StatusOK, body: `{"events": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newStubServer(t, tt.status, tt.body)
			client := New(server.URL, nil, zap.NewNop())

			sb := client.FetchGamesByDate(context.Background(), "nba", "2024-01-15")
			assert.True(t, sb.Failed())
			assert.NotNil(t, sb.Games)
			assert.Empty(t, sb.Games)
		})
	}
}

func TestClient_FetchGamesByDate_HTML(t *testing.T) {
	server, _ := newStubServer(t, http.StatusOK, `<html></html>`)
	sb := New(server.URL, nil, zap.NewNop()).FetchGamesByDate(context.Background(), "nba", "2024-01-15")
	assert.True(t, errors.Is(sb.Err, ErrHTMLResponse))
}

func TestClient_FetchGamesByDate_BadInput(t *testing.T) {
	client := New("http://127.0.0.1:1", nil, zap.NewNop())

	sb := client.FetchGamesByDate(context.Background(), "xfl", "2024-01-15")
	assert.True(t, errors.Is(sb.Err, ErrUnknownLeague))

	sb = client.FetchGamesByDate(context.Background(), "nba", "Jan 15")
	assert.True(t, sb.Failed())
	assert.Empty(t, sb.Games)
}

func TestParseScoreboardGames_Empty(t *testing.T) {
	games, skipped := ParseScoreboardGames(nil, "NBA", "2024-01-15")
	assert.Empty(t, games)
	assert.Empty(t, skipped)
}
