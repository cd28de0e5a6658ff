package official

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

const MLBBaseURL = "https://statsapi.mlb.com/api/v1"

type mlbSchedule struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk int64 `json:"gamePk"`
			Teams  struct {
				Home mlbSide `json:"home"`
				Away mlbSide `json:"away"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type mlbSide struct {
	Team struct {
		ID           int    `json:"id"`
		Name         string `json:"name"`
		TeamName     string `json:"teamName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// MLB queries the Stats API schedule for one date.
type MLB struct {
	baseURL string
	fetcher transport.Fetcher
	logger  *zap.Logger
}

func NewMLB(baseURL string, fetcher transport.Fetcher, logger *zap.Logger) *MLB {
	if baseURL == "" {
		baseURL = MLBBaseURL
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &MLB{baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher, logger: logger.Named("mlb-schedule")}
}

// FindGame matches both abbreviations; the first game of a doubleheader wins.
func (m *MLB) FindGame(ctx context.Context, game domain.GameInfo) (*domain.OfficialGame, error) {
	params := url.Values{}
	params.Set("sportId", "1")
	params.Set("date", game.GameDate)
	params.Set("hydrate", "team")

	var schedule mlbSchedule
	if err := fetchJSON(ctx, m.fetcher, m.baseURL+"/schedule?"+params.Encode(), &schedule); err != nil {
		return nil, err
	}

	for _, day := range schedule.Dates {
		for _, g := range day.Games {
			home, away := g.Teams.Home.Team, g.Teams.Away.Team
			if reconciliation.SameTeam(league.MLB, home.Abbreviation, game.HomeTeamAbbr) &&
				reconciliation.SameTeam(league.MLB, away.Abbreviation, game.AwayTeamAbbr) {
				return &domain.OfficialGame{
					GameID:   strconv.FormatInt(g.GamePk, 10),
					HomeSlug: mlbSlug(home.TeamName, home.Name),
					AwaySlug: mlbSlug(away.TeamName, away.Name),
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s @ %s on %s", ErrNoMatch, game.AwayTeamAbbr, game.HomeTeamAbbr, game.GameDate)
}

func mlbSlug(teamName, fullName string) string {
	if teamName != "" {
		return slugify(teamName)
	}
	return slugify(reconciliation.Nickname(fullName))
}
