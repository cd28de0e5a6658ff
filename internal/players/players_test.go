package players

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/store"
	"github.com/fortuna/boxfinder/internal/store/repository"
)

const searchFixture = `{"items":[
	{"id":"3975","type":"player","displayName":"Stephen Curry","league":"nba","teamRelationships":[{"displayName":"Golden State Warriors"}]},
	{"id":"1966","type":"player","displayName":"LeBron James","league":"nba","teamRelationships":[{"displayName":"Los Angeles Lakers"}]},
	{"id":"x","type":"team","displayName":"LeBron James Family Foundation","league":"nba"}
]}`

func TestESPNSearch_LookupTeam(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("query")
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	s := NewESPNSearch(server.URL, nil, zap.NewNop())

	got, err := s.LookupTeam(context.Background(), "LeBron James", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "LeBron James", query)
	assert.Equal(t, &domain.PlayerTeam{PlayerName: "LeBron James", TeamName: "Los Angeles Lakers", League: "nba"}, got)

	// Without an exact name hit the top player result is used.
	got, err = s.LookupTeam(context.Background(), "Steph", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "Golden State Warriors", got.TeamName)
}

func TestESPNSearch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	_, err := NewESPNSearch(server.URL, nil, zap.NewNop()).LookupTeam(context.Background(), "Nobody", "2024-01-15")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestESPNSearch_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	_, err := NewESPNSearch(server.URL, nil, zap.NewNop()).LookupTeam(context.Background(), "LeBron James", "2024-01-15")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

type stubRoster map[string]*store.RosterEntry

func (s stubRoster) TeamAsOf(ctx context.Context, playerName string, date time.Time) (*store.RosterEntry, error) {
	if e, ok := s[playerName+"@"+date.Format("2006-01-02")]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, playerName)
}

func TestDirectory_LookupTeam(t *testing.T) {
	d := NewDirectory(stubRoster{
		"LeBron James@2016-06-19": {PlayerName: "LeBron James", TeamName: "Cleveland Cavaliers", TeamAbbreviation: "CLE", Sport: "nba"},
	})

	got, err := d.LookupTeam(context.Background(), "LeBron James", "2016-06-19")
	require.NoError(t, err)
	assert.Equal(t, &domain.PlayerTeam{PlayerName: "LeBron James", TeamName: "Cleveland Cavaliers", League: "nba"}, got)

	_, err = d.LookupTeam(context.Background(), "LeBron James", "2024-01-15")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = d.LookupTeam(context.Background(), "LeBron James", "June 19")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

type lookupFunc func(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error)

func (f lookupFunc) LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
	return f(ctx, playerName, isoDate)
}

func TestChain_LookupTeam(t *testing.T) {
	miss := lookupFunc(func(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
		return nil, ErrNotFound
	})
	broken := lookupFunc(func(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
		return nil, errors.New("connection refused")
	})
	hit := lookupFunc(func(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
		return &domain.PlayerTeam{PlayerName: playerName, TeamName: "Los Angeles Lakers", League: "nba"}, nil
	})

	m := metrics.New(prometheus.NewRegistry())
	chain := NewChain(m, zap.NewNop(),
		Source{Name: "atlas", Lookup: miss},
		Source{Name: "broken", Lookup: broken},
		Source{Name: "espn", Lookup: hit},
	)

	got, err := chain.LookupTeam(context.Background(), "LeBron James", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles Lakers", got.TeamName)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlayerLookupsTotal.WithLabelValues("atlas", "missed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlayerLookupsTotal.WithLabelValues("espn", "found")))

	_, err = NewChain(nil, nil, Source{Name: "atlas", Lookup: miss}).LookupTeam(context.Background(), "x", "2024-01-15")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = NewChain(nil, nil).LookupTeam(context.Background(), "x", "2024-01-15")
	assert.True(t, errors.Is(err, ErrNotFound))
}
