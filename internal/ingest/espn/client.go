package espn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
)

const BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// Client reads ESPN scoreboards.
type Client struct {
	baseURL string
	fetcher transport.Fetcher
	logger  *zap.Logger
}

// New creates an ESPN client. An empty baseURL uses the public API; a nil
// fetcher uses plain net/http.
func New(baseURL string, fetcher transport.Fetcher, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logger.Named("espn-client"),
	}
}

// FetchScoreboard fetches the raw scoreboard for a sport path and date.
func (c *Client) FetchScoreboard(ctx context.Context, sportPath string, date time.Time) (*ScoreboardResponse, error) {
	// Specific date in YYYYMMDD format
	url := fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, sportPath, date.Format("20060102"))

	var resp ScoreboardResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchGamesByDate returns the league's games on an ISO date. It never fails:
// any transport, status or payload problem yields an empty slate with Err set.
func (c *Client) FetchGamesByDate(ctx context.Context, leagueID, isoDate string) Scoreboard {
	result := Scoreboard{League: leagueID, Date: isoDate, Games: []domain.GameInfo{}}

	l, ok := league.Get(leagueID)
	if !ok {
		result.Err = fmt.Errorf("%w: %s", ErrUnknownLeague, leagueID)
		c.logger.Warn("scoreboard fetch skipped", zap.String("league", leagueID), zap.Error(result.Err))
		return result
	}

	date, err := time.Parse(domain.DateLayout, isoDate)
	if err != nil {
		result.Err = fmt.Errorf("parse date %q: %w", isoDate, err)
		c.logger.Warn("scoreboard fetch skipped", zap.String("league", leagueID), zap.Error(result.Err))
		return result
	}

	resp, err := c.FetchScoreboard(ctx, l.SportPath, date)
	if err != nil {
		result.Err = err
		c.logger.Warn("scoreboard fetch failed",
			zap.String("league", l.ID),
			zap.String("date", isoDate),
			zap.Error(err),
		)
		return result
	}

	games, skipped := ParseScoreboardGames(resp, l.Code, isoDate)
	for _, skipErr := range skipped {
		c.logger.Debug("skipping event", zap.String("league", l.ID), zap.Error(skipErr))
	}

	c.logger.Debug("scoreboard fetched",
		zap.String("league", l.ID),
		zap.String("date", isoDate),
		zap.Int("games", len(games)),
	)

	result.Games = games
	return result
}
