package espn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/fortuna/boxfinder/internal/ingest/transport"
)

// TeamsResponse is the subset of /{sport}/teams we read.
type TeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team Team `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// Athlete is one roster entry.
type Athlete struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	DisplayName string `json:"displayName"`
}

// rosterGroup is the grouped shape (offense/defense, forwards/goalies...).
type rosterGroup struct {
	Position string    `json:"position"`
	Items    []Athlete `json:"items"`
}

type rosterResponse struct {
	Athletes []json.RawMessage `json:"athletes"`
}

// FetchTeams lists every team in a league.
func (c *Client) FetchTeams(ctx context.Context, sportPath string) ([]Team, error) {
	var resp TeamsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/teams", c.baseURL, sportPath), &resp); err != nil {
		return nil, err
	}

	var teams []Team
	for _, sport := range resp.Sports {
		for _, lg := range sport.Leagues {
			for _, entry := range lg.Teams {
				if entry.Team.ID == "" {
					continue
				}
				teams = append(teams, entry.Team)
			}
		}
	}
	return teams, nil
}

// FetchRoster returns a team's current roster. Basketball answers with a flat
// athlete list; football, hockey and baseball group athletes by position.
func (c *Client) FetchRoster(ctx context.Context, sportPath, teamID string) ([]Athlete, error) {
	var resp rosterResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/teams/%s/roster", c.baseURL, sportPath, teamID), &resp); err != nil {
		return nil, err
	}

	var athletes []Athlete
	for _, raw := range resp.Athletes {
		var group rosterGroup
		if err := json.Unmarshal(raw, &group); err == nil && group.Items != nil {
			athletes = append(athletes, group.Items...)
			continue
		}

		var a Athlete
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decoding athlete: %w", err)
		}
		athletes = append(athletes, a)
	}
	return athletes, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst interface{}) error {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '<' {
		return fmt.Errorf("%w: %s", ErrHTMLResponse, transport.Snippet(body, 200))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding response: %w (body: %s)", err, transport.Snippet(body, 200))
	}
	return nil
}
