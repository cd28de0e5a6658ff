package store

import (
	"database/sql"
	"time"
)

// Team is a franchise row in the roster directory
type Team struct {
	TeamID       int       `json:"team_id" db:"team_id"`
	Sport        string    `json:"sport" db:"sport"`
	Abbreviation string    `json:"abbreviation" db:"abbreviation"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Player is a player row in the roster directory
type Player struct {
	PlayerID    int            `json:"player_id" db:"player_id"`
	Sport       string         `json:"sport" db:"sport"`
	ExternalID  sql.NullString `json:"external_id,omitempty" db:"external_id"`
	FullName    string         `json:"full_name" db:"full_name"`
	DisplayName sql.NullString `json:"display_name,omitempty" db:"display_name"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// RosterEntry is the team a player was on at a point in time
type RosterEntry struct {
	PlayerName       string `json:"player_name"`
	TeamName         string `json:"team_name"`
	TeamAbbreviation string `json:"team_abbreviation"`
	Sport            string `json:"sport"`
}
