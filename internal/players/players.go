// Package players maps a player name to the team they played for on a date.
package players

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/metrics"
)

// ErrNotFound is returned when no source knows the player.
var ErrNotFound = errors.New("player not found")

// Lookup resolves a player to a team as of an ISO date.
type Lookup interface {
	LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error)
}

// Source is a named Lookup, used for logging and metrics.
type Source struct {
	Name   string
	Lookup Lookup
}

// Chain tries each source in order and returns the first answer.
type Chain struct {
	sources []Source
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewChain(m *metrics.Metrics, logger *zap.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{sources: sources, metrics: m, logger: logger.Named("player-lookup")}
}

func (c *Chain) LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
	for _, src := range c.sources {
		pt, err := src.Lookup.LookupTeam(ctx, playerName, isoDate)
		if c.metrics != nil {
			c.metrics.RecordPlayerLookup(src.Name, err == nil)
		}
		if err == nil {
			c.logger.Debug("player resolved",
				zap.String("source", src.Name),
				zap.String("player", playerName),
				zap.String("team", pt.TeamName),
			)
			return pt, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("player lookup failed", zap.String("source", src.Name), zap.Error(err))
		}
	}
	return nil, ErrNotFound
}
