package official

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

const NBAScheduleURL = "https://cdn.nba.com/static/json/staticData/scheduleLeagueV2.json"

type nbaSchedule struct {
	LeagueSchedule struct {
		GameDates []struct {
			GameDate string    `json:"gameDate"` // "01/15/2024 00:00:00"
			Games    []nbaGame `json:"games"`
		} `json:"gameDates"`
	} `json:"leagueSchedule"`
}

type nbaGame struct {
	GameID   string  `json:"gameId"`
	HomeTeam nbaTeam `json:"homeTeam"`
	AwayTeam nbaTeam `json:"awayTeam"`
}

type nbaTeam struct {
	TeamTricode string `json:"teamTricode"`
	TeamName    string `json:"teamName"`
}

// NBA searches the season schedule file, which lists every game at once.
type NBA struct {
	url     string
	fetcher transport.Fetcher
	logger  *zap.Logger
}

func NewNBA(url string, fetcher transport.Fetcher, logger *zap.Logger) *NBA {
	if url == "" {
		url = NBAScheduleURL
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &NBA{url: url, fetcher: fetcher, logger: logger.Named("nba-schedule")}
}

// FindGame matches both tricodes on the game's date.
func (n *NBA) FindGame(ctx context.Context, game domain.GameInfo) (*domain.OfficialGame, error) {
	date, err := time.Parse(domain.DateLayout, game.GameDate)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", game.GameDate, err)
	}

	var schedule nbaSchedule
	if err := fetchJSON(ctx, n.fetcher, n.url, &schedule); err != nil {
		return nil, err
	}

	prefix := date.Format("01/02/2006")
	for _, day := range schedule.LeagueSchedule.GameDates {
		if !strings.HasPrefix(day.GameDate, prefix) {
			continue
		}
		for _, g := range day.Games {
			if reconciliation.SameTeam(league.NBA, g.HomeTeam.TeamTricode, game.HomeTeamAbbr) &&
				reconciliation.SameTeam(league.NBA, g.AwayTeam.TeamTricode, game.AwayTeamAbbr) {
				n.logger.Debug("matched official game", zap.String("game_id", g.GameID))
				return &domain.OfficialGame{
					GameID:   g.GameID,
					HomeSlug: strings.ToLower(g.HomeTeam.TeamTricode),
					AwaySlug: strings.ToLower(g.AwayTeam.TeamTricode),
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s @ %s on %s", ErrNoMatch, game.AwayTeamAbbr, game.HomeTeamAbbr, game.GameDate)
}
