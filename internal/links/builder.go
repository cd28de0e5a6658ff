// Package links turns a resolution outcome into ordered provider links.
// Nothing here touches the network.
package links

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/league"
)

const (
	espnWeb       = "https://www.espn.com"
	sofaScoreBase = "https://www.sofascore.com/search"
	googleBase    = "https://www.google.com/search"

	providerESPN      = "ESPN"
	providerSofaScore = "SofaScore"
	providerGoogle    = "Google"
)

// Input is everything the builder needs. Game, Official and ReferenceURL are
// optional; Official and ReferenceURL are only read when Game is set.
type Input struct {
	Query        domain.SearchQuery
	SearchTerm   string
	Leagues      []string
	Game         *domain.GameInfo
	Official     *domain.OfficialGame
	ReferenceURL string
}

// Build returns links ordered official direct, third-party direct, then search
// fallbacks.
func Build(in Input) []domain.BoxScoreLink {
	var out []domain.BoxScoreLink
	if in.Game != nil {
		out = buildResolved(in)
	} else {
		out = buildUnresolved(in)
	}

	for i := range out {
		out[i].ID = slug(out[i].Provider) + "-" + strconv.Itoa(i)
	}
	return out
}

func buildResolved(in Input) []domain.BoxScoreLink {
	game := *in.Game
	l, _ := league.Get(game.League)
	code := strings.ToUpper(game.League)
	matchup := game.AwayTeam + " @ " + game.HomeTeam
	displayDate := domain.FormatDisplayDate(game.GameDate)
	date, _ := time.Parse(domain.DateLayout, game.GameDate)

	var out []domain.BoxScoreLink

	officialDirect := false
	if in.Official != nil {
		if u := l.OfficialGameURL(in.Official.GameID, in.Official.AwaySlug, in.Official.HomeSlug, date); u != "" {
			out = append(out, domain.BoxScoreLink{
				Provider:     l.OfficialSite,
				ProviderType: domain.ProviderOfficial,
				League:       code,
				URL:          u,
				Description:  fmt.Sprintf("Official %s box score: %s", code, matchup),
				LinkType:     domain.LinkDirect,
			})
			officialDirect = true
		}
	}

	out = append(out, espnDirect(l, game, code, matchup)...)

	if in.ReferenceURL != "" && l.ReferenceSite != "" {
		out = append(out, domain.BoxScoreLink{
			Provider:     l.ReferenceSite,
			ProviderType: domain.ProviderThirdParty,
			League:       code,
			URL:          in.ReferenceURL,
			Description:  fmt.Sprintf("%s box score: %s", l.ReferenceSite, matchup),
			LinkType:     domain.LinkDirect,
		})
	}

	if !officialDirect {
		if u := l.OfficialBrowseURL(game.GameDate); u != "" {
			out = append(out, domain.BoxScoreLink{
				Provider:     l.OfficialSite,
				ProviderType: domain.ProviderOfficial,
				League:       code,
				URL:          u,
				Description:  fmt.Sprintf("%s scores for %s", l.OfficialSite, displayDate),
				LinkType:     domain.LinkSearch,
			})
		}
		if in.ReferenceURL == "" {
			if u := l.ReferenceIndexURL(date); u != "" {
				out = append(out, domain.BoxScoreLink{
					Provider:     l.ReferenceSite,
					ProviderType: domain.ProviderThirdParty,
					League:       code,
					URL:          u,
					Description:  fmt.Sprintf("%s box scores for %s", l.ReferenceSite, displayDate),
					LinkType:     domain.LinkSearch,
				})
			}
		}
	}

	out = append(out, domain.BoxScoreLink{
		Provider:     providerSofaScore,
		ProviderType: domain.ProviderThirdParty,
		League:       code,
		URL:          sofaScoreBase + "?" + url.Values{"q": {strings.TrimSpace(in.SearchTerm + " " + code)}}.Encode(),
		Description:  fmt.Sprintf("Search SofaScore for %s %s", in.SearchTerm, code),
		LinkType:     domain.LinkSearch,
	})

	return out
}

func espnDirect(l league.League, game domain.GameInfo, code, matchup string) []domain.BoxScoreLink {
	type page struct{ path, label string }

	pages := []page{
		{"boxscore", "box score"},
		{"game", "game summary"},
		{"playbyplay", "play-by-play"},
	}
	if l.Soccer {
		pages = []page{
			{"match", "match summary"},
			{"matchstats", "match stats"},
			{"commentary", "commentary"},
		}
	}

	site := l.Site
	if site == "" {
		site = strings.ToLower(code)
	}

	out := make([]domain.BoxScoreLink, 0, len(pages))
	for _, p := range pages {
		out = append(out, domain.BoxScoreLink{
			Provider:     providerESPN,
			ProviderType: domain.ProviderThirdParty,
			League:       code,
			URL:          fmt.Sprintf("%s/%s/%s/_/gameId/%s", espnWeb, site, p.path, url.PathEscape(game.ExternalGameID)),
			Description:  fmt.Sprintf("ESPN %s: %s", p.label, matchup),
			LinkType:     domain.LinkDirect,
		})
	}
	return out
}

func buildUnresolved(in Input) []domain.BoxScoreLink {
	q := in.Query.Trimmed()
	displayDate := domain.FormatDisplayDate(q.GameDate)

	var out []domain.BoxScoreLink
	for _, id := range in.Leagues {
		l, ok := league.Get(id)
		if !ok {
			continue
		}
		query := strings.Join(nonEmpty(in.SearchTerm, l.Code, q.GameDate), " ")
		out = append(out, domain.BoxScoreLink{
			Provider:     providerESPN,
			ProviderType: domain.ProviderThirdParty,
			League:       l.Code,
			URL:          espnWeb + "/search/_/q/" + url.PathEscape(query),
			Description:  fmt.Sprintf("Search ESPN %s for %s", l.Code, in.SearchTerm),
			LinkType:     domain.LinkSearch,
		})
	}

	query := strings.Join(nonEmpty(q.TeamName, q.PlayerName, displayDate, "box score"), " ")
	out = append(out, domain.BoxScoreLink{
		Provider:     providerGoogle,
		ProviderType: domain.ProviderThirdParty,
		League:       leagueLabel(in.Leagues),
		URL:          googleBase + "?" + url.Values{"q": {query}}.Encode(),
		Description:  "Web search: " + query,
		LinkType:     domain.LinkSearch,
	})
	return out
}

func leagueLabel(ids []string) string {
	if len(ids) == 1 {
		if l, ok := league.Get(ids[0]); ok {
			return l.Code
		}
	}
	return "ALL"
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// slug lowercases and hyphenates a provider name: "NBA.com" -> "nba-com".
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
