package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fortuna/boxfinder/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetByAbbreviation finds a team by league and abbreviation
func (r *TeamRepository) GetByAbbreviation(ctx context.Context, sport, abbr string) (*store.Team, error) {
	query := `
		SELECT team_id, sport, abbreviation, full_name, created_at, updated_at
		FROM teams
		WHERE sport = $1 AND abbreviation = $2
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, strings.ToLower(sport), strings.ToUpper(abbr)).Scan(
		&team.TeamID, &team.Sport, &team.Abbreviation, &team.FullName, &team.CreatedAt, &team.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: team %s/%s", ErrNotFound, sport, abbr)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// Upsert inserts or renames a team keyed by league and abbreviation
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (sport, abbreviation, full_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (sport, abbreviation) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			updated_at = NOW()
		RETURNING team_id
	`

	team.Sport = strings.ToLower(team.Sport)
	team.Abbreviation = strings.ToUpper(team.Abbreviation)

	if err := r.db.DB().QueryRowContext(ctx, query, team.Sport, team.Abbreviation, team.FullName).Scan(&team.TeamID); err != nil {
		return fmt.Errorf("upserting team: %w", err)
	}
	return nil
}
