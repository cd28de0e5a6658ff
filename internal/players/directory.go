package players

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/store"
	"github.com/fortuna/boxfinder/internal/store/repository"
)

// RosterReader is the slice of the roster repository the directory needs.
type RosterReader interface {
	TeamAsOf(ctx context.Context, playerName string, date time.Time) (*store.RosterEntry, error)
}

// Directory answers from the Atlas roster history, so traded players resolve
// to the team they were on at the game date.
type Directory struct {
	roster RosterReader
}

func NewDirectory(roster RosterReader) *Directory {
	return &Directory{roster: roster}
}

func (d *Directory) LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
	date, err := time.Parse(domain.DateLayout, isoDate)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", isoDate, err)
	}

	entry, err := d.roster.TeamAsOf(ctx, playerName, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	return &domain.PlayerTeam{
		PlayerName: entry.PlayerName,
		TeamName:   entry.TeamName,
		League:     entry.Sport,
	}, nil
}
