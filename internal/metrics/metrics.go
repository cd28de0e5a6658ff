package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fortuna/boxfinder/internal/ingest/transport"
)

type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchesInFlight prometheus.Gauge

	ScoreboardFetchesTotal *prometheus.CounterVec
	OfficialLookupsTotal   *prometheus.CounterVec

	OutboundRequestsTotal   *prometheus.CounterVec
	OutboundRequestDuration *prometheus.HistogramVec

	PlayerLookupsTotal *prometheus.CounterVec

	RateLimitHitsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Tests pass prometheus.NewRegistry();
// a nil reg uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"outcome"}, // resolved, unresolved, invalid, error
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boxfinder_search_duration_seconds",
				Help:    "Search duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		SearchesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "boxfinder_searches_in_flight",
				Help: "Number of searches currently being resolved",
			},
		),

		ScoreboardFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_scoreboard_fetches_total",
				Help: "Scoreboard fetches by league and status",
			},
			[]string{"league", "status"}, // ok, failed
		),
		OfficialLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_official_lookups_total",
				Help: "Official game id lookups by league and status",
			},
			[]string{"league", "status"}, // found, missed
		),

		OutboundRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_outbound_requests_total",
				Help: "Outbound provider requests by host and status",
			},
			[]string{"host", "status"},
		),
		OutboundRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boxfinder_outbound_request_duration_seconds",
				Help:    "Outbound provider request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
			[]string{"host"},
		),

		PlayerLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_player_lookups_total",
				Help: "Player to team lookups by source and status",
			},
			[]string{"source", "status"},
		),

		RateLimitHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boxfinder_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// Handler serves the registry the collectors were registered on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSearch(outcome string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordScoreboardFetch(league string, ok bool) {
	m.ScoreboardFetchesTotal.WithLabelValues(league, status(ok, "ok", "failed")).Inc()
}

func (m *Metrics) RecordOfficialLookup(league string, found bool) {
	m.OfficialLookupsTotal.WithLabelValues(league, status(found, "found", "missed")).Inc()
}

func (m *Metrics) RecordPlayerLookup(source string, found bool) {
	m.PlayerLookupsTotal.WithLabelValues(source, status(found, "found", "missed")).Inc()
}

func (m *Metrics) RecordRateLimitHit(route string) {
	m.RateLimitHitsTotal.WithLabelValues(route).Inc()
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}

// InstrumentFetcher wraps a fetcher so every call is counted per host.
func (m *Metrics) InstrumentFetcher(next transport.Fetcher) transport.Fetcher {
	return transport.FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
		host := transport.Host(rawURL)
		start := time.Now()

		body, err := next.Fetch(ctx, rawURL)

		m.OutboundRequestDuration.WithLabelValues(host).Observe(time.Since(start).Seconds())
		m.OutboundRequestsTotal.WithLabelValues(host, status(err == nil, "ok", "error")).Inc()
		return body, err
	})
}

func status(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
