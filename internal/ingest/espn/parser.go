package espn

import (
	"fmt"
	"strings"

	"github.com/fortuna/boxfinder/internal/domain"
)

// ParseScoreboardGames converts scoreboard events into games. Events without
// a complete home/away pairing are skipped and reported in skipped.
func ParseScoreboardGames(resp *ScoreboardResponse, leagueCode, isoDate string) (games []domain.GameInfo, skipped []error) {
	if resp == nil || len(resp.Events) == 0 {
		// No games on this date - this is normal, not an error
		return []domain.GameInfo{}, nil
	}

	games = make([]domain.GameInfo, 0, len(resp.Events))
	for _, event := range resp.Events {
		game, err := parseEvent(event, leagueCode, isoDate)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		games = append(games, game)
	}
	return games, skipped
}

func parseEvent(event Event, leagueCode, isoDate string) (domain.GameInfo, error) {
	if event.ID == "" {
		return domain.GameInfo{}, fmt.Errorf("event %q has no id", event.Name)
	}
	if len(event.Competitions) == 0 {
		return domain.GameInfo{}, fmt.Errorf("no competitions found for game %s", event.ID)
	}

	var home, away *Team
	for i := range event.Competitions[0].Competitors {
		c := &event.Competitions[0].Competitors[i]
		switch c.HomeAway {
		case "home":
			home = &c.Team
		case "away":
			away = &c.Team
		}
	}
	if home == nil || away == nil {
		return domain.GameInfo{}, fmt.Errorf("missing home/away competitor for game %s", event.ID)
	}

	homeName, awayName := teamName(home), teamName(away)
	if homeName == "" || awayName == "" || home.Abbreviation == "" || away.Abbreviation == "" {
		return domain.GameInfo{}, fmt.Errorf("incomplete team data for game %s", event.ID)
	}

	return domain.GameInfo{
		ExternalGameID: event.ID,
		HomeTeam:       homeName,
		AwayTeam:       awayName,
		HomeTeamAbbr:   strings.ToUpper(home.Abbreviation),
		AwayTeamAbbr:   strings.ToUpper(away.Abbreviation),
		GameDate:       isoDate,
		League:         leagueCode,
	}, nil
}

func teamName(t *Team) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	if t.Location != "" && t.Name != "" {
		return t.Location + " " + t.Name
	}
	return t.ShortDisplayName
}
