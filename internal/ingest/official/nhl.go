package official

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

const NHLBaseURL = "https://api-web.nhle.com/v1"

type nhlScore struct {
	Games []struct {
		ID       int64   `json:"id"`
		HomeTeam nhlTeam `json:"homeTeam"`
		AwayTeam nhlTeam `json:"awayTeam"`
	} `json:"games"`
}

type nhlTeam struct {
	Abbrev string `json:"abbrev"`
}

// NHL queries the date-scoped score endpoint.
type NHL struct {
	baseURL string
	fetcher transport.Fetcher
	logger  *zap.Logger
}

func NewNHL(baseURL string, fetcher transport.Fetcher, logger *zap.Logger) *NHL {
	if baseURL == "" {
		baseURL = NHLBaseURL
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &NHL{baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher, logger: logger.Named("nhl-score")}
}

// FindGame prefers a game where both teams match. Failing that it accepts
// the first game where either team matches: a wrong box score link is
// preferred over none.
func (n *NHL) FindGame(ctx context.Context, game domain.GameInfo) (*domain.OfficialGame, error) {
	var score nhlScore
	if err := fetchJSON(ctx, n.fetcher, n.baseURL+"/score/"+game.GameDate, &score); err != nil {
		return nil, err
	}

	partial := -1
	for i, g := range score.Games {
		homeOK := reconciliation.SameTeam(league.NHL, g.HomeTeam.Abbrev, game.HomeTeamAbbr)
		awayOK := reconciliation.SameTeam(league.NHL, g.AwayTeam.Abbrev, game.AwayTeamAbbr)
		if homeOK && awayOK {
			return n.toOfficial(i, score), nil
		}
		if partial < 0 && (homeOK || awayOK) {
			partial = i
		}
	}

	if partial >= 0 {
		n.logger.Debug("using single-team match",
			zap.String("home", game.HomeTeamAbbr),
			zap.String("away", game.AwayTeamAbbr),
		)
		return n.toOfficial(partial, score), nil
	}

	return nil, fmt.Errorf("%w: %s @ %s on %s", ErrNoMatch, game.AwayTeamAbbr, game.HomeTeamAbbr, game.GameDate)
}

func (n *NHL) toOfficial(i int, score nhlScore) *domain.OfficialGame {
	g := score.Games[i]
	return &domain.OfficialGame{
		GameID:   strconv.FormatInt(g.ID, 10),
		HomeSlug: strings.ToLower(g.HomeTeam.Abbrev),
		AwaySlug: strings.ToLower(g.AwayTeam.Abbrev),
	}
}
