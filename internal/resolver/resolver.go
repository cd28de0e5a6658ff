// Package resolver finds the game a search term refers to on a date and
// attaches the league's own identifiers for it.
package resolver

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/ingest/official"
	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

// ScoreboardSource returns one league's games for a date. Implementations
// must not fail; a broken fetch is an empty Scoreboard with Err set.
type ScoreboardSource interface {
	FetchGamesByDate(ctx context.Context, leagueID, isoDate string) espn.Scoreboard
}

// BoxScoreFinder locates a direct reference box score page for a game.
type BoxScoreFinder interface {
	FindBoxScore(ctx context.Context, game domain.GameInfo) (string, error)
}

// Resolution is the outcome of a lookup. Game is nil when nothing matched.
type Resolution struct {
	Game         *domain.GameInfo
	Official     *domain.OfficialGame
	ReferenceURL string
}

type Options struct {
	// Parallel fetches every candidate league at once; the earliest league
	// in candidate order still wins.
	Parallel bool
}

type Resolver struct {
	scoreboards ScoreboardSource
	finders     map[string]official.Finder
	reference   BoxScoreFinder
	metrics     *metrics.Metrics
	opts        Options
	logger      *zap.Logger
}

// New creates a resolver. finders, reference and m may be nil.
func New(scoreboards ScoreboardSource, finders map[string]official.Finder, reference BoxScoreFinder, m *metrics.Metrics, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		scoreboards: scoreboards,
		finders:     finders,
		reference:   reference,
		metrics:     m,
		opts:        opts,
		logger:      logger.Named("resolver"),
	}
}

// Resolve finds the game and runs the secondary lookups for its league.
func (r *Resolver) Resolve(ctx context.Context, searchTerm, isoDate string, leagues []string) Resolution {
	game := r.FindGame(ctx, searchTerm, isoDate, leagues)
	if game == nil {
		return Resolution{}
	}

	res := Resolution{Game: game}
	res.Official = r.FindOfficial(ctx, *game)
	res.ReferenceURL = r.FindReference(ctx, *game)
	return res
}

// FindGame returns the first game whose home, then away, team matches the
// term, walking leagues in order. It returns nil when nothing matches.
func (r *Resolver) FindGame(ctx context.Context, searchTerm, isoDate string, leagues []string) *domain.GameInfo {
	if r.opts.Parallel && len(leagues) > 1 {
		return r.findParallel(ctx, searchTerm, isoDate, leagues)
	}

	for _, id := range leagues {
		board := r.fetch(ctx, id, isoDate)
		if game := match(searchTerm, board.Games); game != nil {
			r.logger.Debug("game matched",
				zap.String("term", searchTerm),
				zap.String("league", id),
				zap.String("game_id", game.ExternalGameID),
			)
			return game
		}
	}

	r.logger.Debug("no game matched", zap.String("term", searchTerm), zap.String("date", isoDate))
	return nil
}

// findParallel fans out every league fetch. Each slot holds that league's
// first match, so the scan afterwards preserves candidate order.
func (r *Resolver) findParallel(ctx context.Context, searchTerm, isoDate string, leagues []string) *domain.GameInfo {
	found := make([]*domain.GameInfo, len(leagues))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range leagues {
		g.Go(func() error {
			board := r.fetch(gctx, id, isoDate)
			found[i] = match(searchTerm, board.Games)
			return nil
		})
	}
	_ = g.Wait()

	for i, game := range found {
		if game != nil {
			r.logger.Debug("game matched",
				zap.String("term", searchTerm),
				zap.String("league", leagues[i]),
				zap.String("game_id", game.ExternalGameID),
				zap.Bool("parallel", true),
			)
			return game
		}
	}
	return nil
}

func (r *Resolver) fetch(ctx context.Context, leagueID, isoDate string) espn.Scoreboard {
	board := r.scoreboards.FetchGamesByDate(ctx, leagueID, isoDate)
	if r.metrics != nil {
		r.metrics.RecordScoreboardFetch(leagueID, !board.Failed())
	}
	return board
}

func match(searchTerm string, games []domain.GameInfo) *domain.GameInfo {
	for i := range games {
		g := games[i]
		if reconciliation.MatchesTeam(searchTerm, g.HomeTeam, g.HomeTeamAbbr, g.HomeTeam) ||
			reconciliation.MatchesTeam(searchTerm, g.AwayTeam, g.AwayTeamAbbr, g.AwayTeam) {
			return &g
		}
	}
	return nil
}

// FindOfficial asks the league's own source for its game id. Any failure is
// logged and reported as nil.
func (r *Resolver) FindOfficial(ctx context.Context, game domain.GameInfo) *domain.OfficialGame {
	finder, ok := r.finders[leagueKey(game.League)]
	if !ok {
		return nil
	}

	og, err := finder.FindGame(ctx, game)
	if r.metrics != nil {
		r.metrics.RecordOfficialLookup(leagueKey(game.League), err == nil)
	}
	if err != nil {
		level := r.logger.Warn
		if errors.Is(err, official.ErrNoMatch) {
			level = r.logger.Debug
		}
		level("official lookup failed",
			zap.String("league", game.League),
			zap.String("game_id", game.ExternalGameID),
			zap.Error(err),
		)
		return nil
	}
	return og
}

// FindReference returns a scraped reference box score URL, or "" when
// scraping is disabled or fails.
func (r *Resolver) FindReference(ctx context.Context, game domain.GameInfo) string {
	if r.reference == nil {
		return ""
	}
	u, err := r.reference.FindBoxScore(ctx, game)
	if err != nil {
		r.logger.Debug("reference lookup failed",
			zap.String("league", game.League),
			zap.Error(err),
		)
		return ""
	}
	return u
}

func leagueKey(code string) string {
	return strings.ToLower(code)
}
