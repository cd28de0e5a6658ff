// Package roster imports current team rosters into the Atlas directory so
// player searches can resolve a team as of the game date.
package roster

import (
	"context"
	"time"

	"github.com/fortuna/boxfinder/internal/ingest/espn"
	"github.com/fortuna/boxfinder/internal/store"
)

// JobSpec describes one import run.
type JobSpec struct {
	Leagues []string
	// AsOf is the date new stints start on; roster moves close the previous
	// stint on the same date.
	AsOf   time.Time
	DryRun bool
}

// Summary counts what a run did.
type Summary struct {
	Teams   int
	Players int
	Moves   int
	Renames int
	Failed  int
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnTeamStart(league string, team espn.Team, index, total int)
	OnTeamFailed(league string, team espn.Team, err error)
	OnJobComplete(summary Summary)
}

// Source reads teams and rosters.
type Source interface {
	FetchTeams(ctx context.Context, sportPath string) ([]espn.Team, error)
	FetchRoster(ctx context.Context, sportPath, teamID string) ([]espn.Athlete, error)
}

// TeamWriter persists teams.
type TeamWriter interface {
	GetByAbbreviation(ctx context.Context, sport, abbr string) (*store.Team, error)
	Upsert(ctx context.Context, team *store.Team) error
}

// PlayerWriter persists players and their stints.
type PlayerWriter interface {
	Upsert(ctx context.Context, player *store.Player) error
	MoveToTeam(ctx context.Context, playerID, teamID int, asOf time.Time) (bool, error)
}
