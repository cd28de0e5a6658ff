package espn

import (
	"errors"

	"github.com/fortuna/boxfinder/internal/domain"
)

// ScoreboardResponse is the subset of the ESPN scoreboard payload we read.
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	ID          string       `json:"id"`
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Team     Team   `json:"team"`
}

type Team struct {
	ID               string `json:"id"`
	Location         string `json:"location"`
	Name             string `json:"name"`
	Abbreviation     string `json:"abbreviation"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
}

var (
	// ErrHTMLResponse means ESPN answered with an HTML error page instead of JSON.
	ErrHTMLResponse = errors.New("ESPN returned HTML instead of JSON")
	// ErrUnknownLeague is reported for a league id with no ESPN mapping.
	ErrUnknownLeague = errors.New("unknown league")
)

// Scoreboard is the soft-fail result of one (league, date) fetch. Games is
// always usable; Err records why it is empty when the fetch failed.
type Scoreboard struct {
	League string
	Date   string
	Games  []domain.GameInfo
	Err    error
}

// Failed reports whether the fetch failed, as opposed to an empty slate.
func (s Scoreboard) Failed() bool {
	return s.Err != nil
}
