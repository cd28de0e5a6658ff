package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/links"
	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/players"
	"github.com/fortuna/boxfinder/internal/resolver"
)

// Search outcomes recorded in metrics.
const (
	outcomeResolved   = "resolved"
	outcomeUnresolved = "unresolved"
	outcomeInvalid    = "invalid"
	outcomeError      = "error"
)

// GameResolver finds the game a term refers to, with its secondary identifiers.
type GameResolver interface {
	Resolve(ctx context.Context, searchTerm, isoDate string, leagues []string) resolver.Resolution
}

// SearchService turns a SearchQuery into an ordered list of box score links
type SearchService struct {
	resolver GameResolver
	players  players.Lookup
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSearchService creates a new search service. lookup and m may be nil.
func NewSearchService(r GameResolver, lookup players.Lookup, m *metrics.Metrics, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		resolver: r,
		players:  lookup,
		metrics:  m,
		logger:   logger.Named("search"),
	}
}

// subject is what the resolver searches for after player resolution.
type subject struct {
	term               string
	displayTeam        string
	leagues            []string
	resolvedFromPlayer bool
}

// Search validates the query and assembles the result. Only validation
// failures and a cancelled context are returned as errors; provider trouble
// degrades to search links.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncSearchesInFlight()
		defer s.metrics.DecSearchesInFlight()
	}

	q = q.Trimmed()
	if err := q.Validate(); err != nil {
		s.record(outcomeInvalid, start)
		return nil, err
	}

	subj := s.subjectFor(ctx, q)
	res := s.resolver.Resolve(ctx, subj.term, q.GameDate, subj.leagues)

	if err := ctx.Err(); err != nil {
		s.record(outcomeError, start)
		return nil, err
	}

	result := &domain.SearchResult{
		Query: q,
		Links: links.Build(links.Input{
			Query:        q,
			SearchTerm:   subj.term,
			Leagues:      subj.leagues,
			Game:         res.Game,
			Official:     res.Official,
			ReferenceURL: res.ReferenceURL,
		}),
		MatchInfo: domain.MatchInfo{
			PlayerName:         q.PlayerName,
			TeamName:           subj.displayTeam,
			GameDate:           q.GameDate,
			FormattedDate:      domain.FormatDisplayDate(q.GameDate),
			ResolvedFromPlayer: subj.resolvedFromPlayer,
		},
	}

	outcome := outcomeUnresolved
	if res.Game != nil {
		outcome = outcomeResolved
	}
	s.record(outcome, start)

	s.logger.Info("search completed",
		zap.String("term", subj.term),
		zap.String("date", q.GameDate),
		zap.Strings("leagues", subj.leagues),
		zap.String("outcome", outcome),
		zap.Int("links", len(result.Links)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// subjectFor picks the search term and candidate leagues. A player-only
// query is resolved to a team first; when that fails the player name itself
// becomes the term.
func (s *SearchService) subjectFor(ctx context.Context, q domain.SearchQuery) subject {
	if q.TeamName != "" {
		return subject{
			term:        q.TeamName,
			displayTeam: q.TeamName,
			leagues:     league.DetectLeagues(q.TeamName),
		}
	}

	if s.players != nil {
		pt, err := s.players.LookupTeam(ctx, q.PlayerName, q.GameDate)
		if err == nil && pt.TeamName != "" {
			return subject{
				term:               pt.TeamName,
				displayTeam:        pt.TeamName + " (from " + q.PlayerName + ")",
				leagues:            league.Prioritize(league.DetectLeagues(pt.TeamName), pt.League),
				resolvedFromPlayer: true,
			}
		}
		s.logger.Debug("player not resolved to a team",
			zap.String("player", q.PlayerName),
			zap.Error(err),
		)
	}

	return subject{
		term:    q.PlayerName,
		leagues: league.DetectLeagues(q.PlayerName),
	}
}

func (s *SearchService) record(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordSearch(outcome, time.Since(start))
	}
}
