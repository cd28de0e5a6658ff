package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/config"
	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/ingest/official"
	"github.com/fortuna/boxfinder/internal/ingest/reference"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/players"
	"github.com/fortuna/boxfinder/internal/ratelimit"
	"github.com/fortuna/boxfinder/internal/resolver"
	"github.com/fortuna/boxfinder/internal/service"
	"github.com/fortuna/boxfinder/internal/store"
	"github.com/fortuna/boxfinder/internal/store/repository"
)

const (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

// app holds everything a command may need to release on exit.
type app struct {
	search  *service.SearchService
	metrics *metrics.Metrics
	atlas   *store.Database
	logger  *zap.Logger
}

func (a *app) Close() {
	if a.atlas != nil {
		a.atlas.Close()
	}
}

// build wires the search pipeline. The roster directory is optional; without
// ATLAS_DSN player lookups go straight to ESPN search.
func build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	m := metrics.New(nil)

	fetcher, err := transport.New(cfg.Transport, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, err
	}
	fetcher = m.InstrumentFetcher(fetcher)

	// The JSON APIs never need a browser; keep them on plain HTTP.
	apiFetcher := m.InstrumentFetcher(transport.NewHTTP(cfg.HTTPTimeout, logger))

	var ref resolver.BoxScoreFinder
	if cfg.ReferenceScrape {
		ref = reference.NewScraper(fetcher, logger)
	}

	res := resolver.New(
		espn.New(cfg.ESPNBaseURL, fetcher, logger),
		official.NewFinders(cfg.OfficialConfig(), apiFetcher, logger),
		ref,
		m,
		resolver.Options{Parallel: cfg.ResolverParallel},
		logger,
	)

	a := &app{metrics: m, logger: logger}

	var sources []players.Source
	if cfg.AtlasDSN != "" {
		a.atlas, err = store.NewDatabase(ctx, cfg.AtlasDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("connect atlas: %w", err)
		}
		logger.Info("connected to atlas roster directory")
		sources = append(sources, players.Source{
			Name:   "atlas",
			Lookup: players.NewDirectory(repository.NewPlayerRepository(a.atlas)),
		})
	}
	sources = append(sources, players.Source{
		Name:   "espn",
		Lookup: players.NewESPNSearch(cfg.ESPNSearchURL, apiFetcher, logger),
	})

	a.search = service.NewSearchService(res, players.NewChain(m, logger, sources...), m, logger)
	return a, nil
}

// connectRedis retries while Redis comes up alongside the service.
func connectRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ratelimit.Redis, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		limiter, err := ratelimit.NewRedis(ctx, cfg.RedisURL, cfg.RateLimitPerMinute)
		if err == nil {
			return limiter, nil
		}
		lastErr = err

		logger.Warn("redis connection failed",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("connect redis after %d attempts: %w", maxRetries, lastErr)
}
