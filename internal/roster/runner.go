package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/store"
)

// Runner executes roster imports.
type Runner struct {
	source  Source
	teams   TeamWriter
	players PlayerWriter
	logger  *zap.Logger
}

func NewRunner(source Source, teams TeamWriter, players PlayerWriter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		source:  source,
		teams:   teams,
		players: players,
		logger:  logger.Named("roster"),
	}
}

// Run imports every team of every league in spec. A team whose roster cannot
// be fetched is reported and skipped; write errors abort the run.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error) {
	var summary Summary
	if reporter == nil {
		reporter = nopReporter{}
	}

	asOf := spec.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	spec.AsOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	reporter.OnJobStart(spec)

	for _, id := range spec.Leagues {
		l, ok := league.Get(id)
		if !ok {
			return summary, fmt.Errorf("unknown league %q", id)
		}
		if l.Soccer {
			// Club rosters churn across competitions; the directory covers
			// the North American leagues only.
			r.logger.Info("skipping league", zap.String("league", l.ID))
			continue
		}

		teams, err := r.source.FetchTeams(ctx, l.SportPath)
		if err != nil {
			return summary, fmt.Errorf("fetch %s teams: %w", l.Code, err)
		}

		for idx, t := range teams {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			reporter.OnTeamStart(l.Code, t, idx, len(teams))

			athletes, err := r.source.FetchRoster(ctx, l.SportPath, t.ID)
			if err != nil {
				summary.Failed++
				reporter.OnTeamFailed(l.Code, t, err)
				continue
			}

			summary.Teams++
			summary.Players += len(athletes)
			if spec.DryRun {
				continue
			}

			moves, renamed, err := r.importTeam(ctx, l, t, athletes, spec.AsOf)
			if err != nil {
				return summary, err
			}
			summary.Moves += moves
			if renamed {
				summary.Renames++
			}
		}
	}

	reporter.OnJobComplete(summary)
	return summary, nil
}

func (r *Runner) importTeam(ctx context.Context, l league.League, t espn.Team, athletes []espn.Athlete, asOf time.Time) (int, bool, error) {
	team := &store.Team{
		Sport:        l.ID,
		Abbreviation: t.Abbreviation,
		FullName:     teamName(t),
	}

	// A lookup miss is a new team.
	renamed := false
	if prev, err := r.teams.GetByAbbreviation(ctx, l.ID, t.Abbreviation); err == nil && prev.FullName != team.FullName {
		renamed = true
		r.logger.Info("team renamed",
			zap.String("league", l.Code),
			zap.String("abbreviation", t.Abbreviation),
			zap.String("from", prev.FullName),
			zap.String("to", team.FullName),
		)
	}

	if err := r.teams.Upsert(ctx, team); err != nil {
		return 0, false, fmt.Errorf("save team %s: %w", t.Abbreviation, err)
	}

	moves := 0
	for _, a := range athletes {
		name := strings.TrimSpace(a.FullName)
		if name == "" {
			name = strings.TrimSpace(a.DisplayName)
		}
		if name == "" {
			continue
		}

		player := &store.Player{
			Sport:       l.ID,
			FullName:    name,
			ExternalID:  nullString(a.ID),
			DisplayName: nullString(a.DisplayName),
		}
		if err := r.players.Upsert(ctx, player); err != nil {
			return moves, renamed, fmt.Errorf("save player %s: %w", name, err)
		}

		moved, err := r.players.MoveToTeam(ctx, player.PlayerID, team.TeamID, asOf)
		if err != nil {
			return moves, renamed, fmt.Errorf("assign %s to %s: %w", name, team.Abbreviation, err)
		}
		if moved {
			moves++
		}
	}
	return moves, renamed, nil
}

func teamName(t espn.Team) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return strings.TrimSpace(t.Location + " " + t.Name)
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

type nopReporter struct{}

func (nopReporter) OnJobStart(JobSpec)                      {}
func (nopReporter) OnTeamStart(string, espn.Team, int, int) {}
func (nopReporter) OnTeamFailed(string, espn.Team, error)   {}
func (nopReporter) OnJobComplete(Summary)                   {}
