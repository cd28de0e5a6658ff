package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format accepted for GameDate.
const DateLayout = "2006-01-02"

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (q SearchQuery) Trimmed() SearchQuery {
	return SearchQuery{
		PlayerName: strings.TrimSpace(q.PlayerName),
		TeamName:   strings.TrimSpace(q.TeamName),
		GameDate:   strings.TrimSpace(q.GameDate),
	}
}

// Validate checks the query invariants. A missing name is reported on teamName.
func (q SearchQuery) Validate() error {
	q = q.Trimmed()

	var errs ValidationErrors
	if q.PlayerName == "" && q.TeamName == "" {
		errs = append(errs, &ValidationError{
			Field:   "teamName",
			Message: "either a team name or a player name is required",
		})
	}

	switch {
	case q.GameDate == "":
		errs = append(errs, &ValidationError{Field: "gameDate", Message: "game date is required"})
	default:
		if _, err := time.Parse(DateLayout, q.GameDate); err != nil {
			errs = append(errs, &ValidationError{Field: "gameDate", Message: "game date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FormatDisplayDate renders an ISO date as "Monday, January 15, 2024".
// Unparseable input is returned unchanged.
func FormatDisplayDate(iso string) string {
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, January 2, 2006")
}
