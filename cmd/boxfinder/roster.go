package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/roster"
	"github.com/fortuna/boxfinder/internal/store"
	"github.com/fortuna/boxfinder/internal/store/repository"
)

var (
	rosterLeagues []string
	rosterAsOf    string
	rosterDryRun  bool
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Import current ESPN rosters into the Atlas player directory",
	Long: `Fetches every team roster for the given leagues and records each player's
team from --as-of on. Players whose team changed since the last import get
their previous stint closed on the same date.`,
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().StringSliceVar(&rosterLeagues, "league", []string{"nba", "nhl", "mlb", "nfl"}, "leagues to import")
	rosterCmd.Flags().StringVar(&rosterAsOf, "as-of", "", "stint start date, YYYY-MM-DD (default today)")
	rosterCmd.Flags().BoolVar(&rosterDryRun, "dry-run", false, "fetch rosters without writing")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	spec := roster.JobSpec{Leagues: rosterLeagues, DryRun: rosterDryRun}
	if rosterAsOf != "" {
		spec.AsOf, err = time.Parse(domain.DateLayout, rosterAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
	}

	var teams roster.TeamWriter
	var players roster.PlayerWriter
	if !rosterDryRun {
		if cfg.AtlasDSN == "" {
			return errors.New("atlas dsn is required (--atlas-dsn or ATLAS_DSN)")
		}
		db, err := store.NewDatabase(cmd.Context(), cfg.AtlasDSN, logger)
		if err != nil {
			return fmt.Errorf("connect atlas: %w", err)
		}
		defer db.Close()
		if err := db.RunMigrations(cmd.Context()); err != nil {
			return err
		}
		teams = repository.NewTeamRepository(db)
		players = repository.NewPlayerRepository(db)
	}

	fetcher, err := transport.New(cfg.Transport, cfg.HTTPTimeout, logger)
	if err != nil {
		return err
	}
	runner := roster.NewRunner(espn.New(cfg.ESPNBaseURL, fetcher, logger), teams, players, logger)

	_, err = runner.Run(cmd.Context(), spec, &logReporter{logger: logger.Named("roster")})
	return err
}

// logReporter writes runner progress to the service log.
type logReporter struct {
	logger *zap.Logger
}

func (r *logReporter) OnJobStart(spec roster.JobSpec) {
	r.logger.Info("roster import started",
		zap.String("leagues", strings.Join(spec.Leagues, ",")),
		zap.String("as_of", spec.AsOf.Format(domain.DateLayout)),
		zap.Bool("dry_run", spec.DryRun),
	)
}

func (r *logReporter) OnTeamStart(league string, team espn.Team, index, total int) {
	r.logger.Info(fmt.Sprintf("[%d/%d] %s %s", index+1, total, league, team.Abbreviation))
}

func (r *logReporter) OnTeamFailed(league string, team espn.Team, err error) {
	r.logger.Warn("roster fetch failed",
		zap.String("league", league),
		zap.String("team", team.Abbreviation),
		zap.Error(err),
	)
}

func (r *logReporter) OnJobComplete(s roster.Summary) {
	r.logger.Info("roster import complete",
		zap.Int("teams", s.Teams),
		zap.Int("players", s.Players),
		zap.Int("moves", s.Moves),
		zap.Int("renames", s.Renames),
		zap.Int("failed", s.Failed),
	)
}
