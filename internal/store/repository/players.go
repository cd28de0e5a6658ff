package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/boxfinder/internal/store"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Upsert inserts or updates a player keyed by league and full name
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (sport, external_id, full_name, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sport, full_name) DO UPDATE SET
			external_id = COALESCE(EXCLUDED.external_id, players.external_id),
			display_name = COALESCE(EXCLUDED.display_name, players.display_name),
			updated_at = NOW()
		RETURNING player_id
	`

	player.Sport = strings.ToLower(player.Sport)

	err := r.db.DB().QueryRowContext(ctx, query,
		player.Sport, player.ExternalID, player.FullName, player.DisplayName,
	).Scan(&player.PlayerID)
	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}

	return nil
}

// TeamAsOf returns the team a player was on at date, matching the full or
// display name case-insensitively. When several stints qualify the most
// recently started one wins.
func (r *PlayerRepository) TeamAsOf(ctx context.Context, playerName string, date time.Time) (*store.RosterEntry, error) {
	query := `
		SELECT p.full_name, t.full_name, t.abbreviation, t.sport
		FROM players p
		INNER JOIN player_team_history pth ON p.player_id = pth.player_id
		INNER JOIN teams t ON t.team_id = pth.team_id
		WHERE (LOWER(p.full_name) = LOWER($1) OR LOWER(p.display_name) = LOWER($1))
		  AND pth.start_date <= $2
		  AND (pth.end_date IS NULL OR pth.end_date > $2)
		ORDER BY pth.start_date DESC
		LIMIT 1
	`

	entry := &store.RosterEntry{}
	err := r.db.DB().QueryRowContext(ctx, query, strings.TrimSpace(playerName), date).Scan(
		&entry.PlayerName, &entry.TeamName, &entry.TeamAbbreviation, &entry.Sport,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no team for %q on %s", ErrNotFound, playerName, date.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}

	return entry, nil
}

// MoveToTeam makes teamID the player's current team from asOf on. Open stints
// with other teams are closed at asOf; an open stint with teamID is kept.
func (r *PlayerRepository) MoveToTeam(ctx context.Context, playerID, teamID int, asOf time.Time) (moved bool, err error) {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM player_team_history
		WHERE player_id = $1 AND team_id = $2 AND end_date IS NULL
	`, playerID, teamID).Scan(&current)
	if err != nil {
		return false, fmt.Errorf("checking current stint: %w", err)
	}
	if current > 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE player_team_history SET end_date = $3
		WHERE player_id = $1 AND team_id <> $2 AND end_date IS NULL
	`, playerID, teamID, asOf)
	if err != nil {
		return false, fmt.Errorf("closing previous stint: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO player_team_history (player_id, team_id, start_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, team_id, start_date) DO UPDATE SET end_date = NULL
	`, playerID, teamID, asOf)
	if err != nil {
		return false, fmt.Errorf("opening stint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
