package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/ingest/official"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/players"
)

type Config struct {
	Port int
	Log  LogConfig

	ESPNBaseURL    string
	ESPNSearchURL  string
	NBAScheduleURL string
	NHLBaseURL     string
	MLBBaseURL     string

	Transport   string
	HTTPTimeout time.Duration

	ReferenceScrape  bool
	ResolverParallel bool

	AtlasDSN string
	RedisURL string

	RateLimitPerMinute int
}

type LogConfig struct {
	Level string
	// File, when set, also writes JSON logs to a rotating file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 5)

	v.SetDefault("espn_api_base", espn.BaseURL)
	v.SetDefault("espn_search_base", players.SearchURL)
	v.SetDefault("nba_schedule_url", official.NBAScheduleURL)
	v.SetDefault("nhl_api_base", official.NHLBaseURL)
	v.SetDefault("mlb_api_base", official.MLBBaseURL)

	v.SetDefault("scoreboard_transport", transport.KindHTTP)
	v.SetDefault("http_timeout_sec", 15)
	v.SetDefault("reference_scrape", false)
	v.SetDefault("resolver_parallel", false)

	v.SetDefault("atlas_dsn", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("rate_limit_per_minute", 60)
}

// Load reads configuration from the environment (PORT, LOG_LEVEL, ...) on top
// of the defaults. Flags bound onto v take precedence.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port: v.GetInt("port"),
		Log: LogConfig{
			Level:      v.GetString("log_level"),
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
		},

		ESPNBaseURL:    v.GetString("espn_api_base"),
		ESPNSearchURL:  v.GetString("espn_search_base"),
		NBAScheduleURL: v.GetString("nba_schedule_url"),
		NHLBaseURL:     v.GetString("nhl_api_base"),
		MLBBaseURL:     v.GetString("mlb_api_base"),

		Transport:   v.GetString("scoreboard_transport"),
		HTTPTimeout: time.Duration(v.GetInt("http_timeout_sec")) * time.Second,

		ReferenceScrape:  v.GetBool("reference_scrape"),
		ResolverParallel: v.GetBool("resolver_parallel"),

		AtlasDSN: v.GetString("atlas_dsn"),
		RedisURL: v.GetString("redis_url"),

		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.Transport {
	case transport.KindHTTP, transport.KindCurl, transport.KindBrowser:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", transport.ErrUnknownKind, c.Transport))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("rate limit must be positive"))
	}
	if c.ESPNBaseURL == "" {
		errs = append(errs, errors.New("espn api base is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// OfficialConfig is the league endpoint set for official.NewFinders.
func (c *Config) OfficialConfig() official.Config {
	return official.Config{
		NBAScheduleURL: c.NBAScheduleURL,
		NHLBaseURL:     c.NHLBaseURL,
		MLBBaseURL:     c.MLBBaseURL,
	}
}
