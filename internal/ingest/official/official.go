// Package official looks up a league's own game identifier for a game that
// was already resolved through the ESPN scoreboard.
package official

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
)

// ErrNoMatch means the league source had no game for these teams on the date.
var ErrNoMatch = errors.New("no matching official game")

// Finder resolves the official identifier for a game.
type Finder interface {
	FindGame(ctx context.Context, game domain.GameInfo) (*domain.OfficialGame, error)
}

// Config holds the league endpoints.
type Config struct {
	NBAScheduleURL string
	NHLBaseURL     string
	MLBBaseURL     string
}

// NewFinders builds one finder per league that has an official integration.
func NewFinders(cfg Config, fetcher transport.Fetcher, logger *zap.Logger) map[string]Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return map[string]Finder{
		league.NBA: NewNBA(cfg.NBAScheduleURL, fetcher, logger),
		league.NHL: NewNHL(cfg.NHLBaseURL, fetcher, logger),
		league.MLB: NewMLB(cfg.MLBBaseURL, fetcher, logger),
	}
}

func fetchJSON(ctx context.Context, fetcher transport.Fetcher, url string, dst interface{}) error {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// slugify turns "Red Sox" into "red-sox".
func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
