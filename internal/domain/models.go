package domain

// SearchQuery is the user-supplied lookup: a player and/or team plus a game date.
type SearchQuery struct {
	PlayerName string `json:"playerName"`
	TeamName   string `json:"teamName"`
	GameDate   string `json:"gameDate"`
}

// GameInfo is one game as reported by the scoreboard provider.
type GameInfo struct {
	ExternalGameID string `json:"externalGameId"`
	HomeTeam       string `json:"homeTeam"`
	AwayTeam       string `json:"awayTeam"`
	HomeTeamAbbr   string `json:"homeTeamAbbr"`
	AwayTeamAbbr   string `json:"awayTeamAbbr"`
	GameDate       string `json:"gameDate"`
	League         string `json:"league"` // upper-case code, e.g. "NBA"
}

// OfficialGame is the league-operated identifier for a game resolved via the scoreboard.
type OfficialGame struct {
	GameID   string
	HomeSlug string
	AwaySlug string
}

// ProviderType distinguishes league-operated sites from everyone else.
type ProviderType string

const (
	ProviderOfficial   ProviderType = "official"
	ProviderThirdParty ProviderType = "third-party"
)

// LinkType says whether a link points at an identified game or runs a query.
type LinkType string

const (
	LinkSearch LinkType = "search"
	LinkDirect LinkType = "direct"
)

// BoxScoreLink is a single provider link in a SearchResult.
type BoxScoreLink struct {
	ID           string       `json:"id"`
	Provider     string       `json:"provider"`
	ProviderType ProviderType `json:"providerType"`
	League       string       `json:"league"`
	URL          string       `json:"url"`
	Description  string       `json:"description"`
	LinkType     LinkType     `json:"linkType"`
}

// MatchInfo carries display metadata for a result.
type MatchInfo struct {
	PlayerName         string `json:"playerName"`
	TeamName           string `json:"teamName"`
	GameDate           string `json:"gameDate"`
	FormattedDate      string `json:"formattedDate"`
	ResolvedFromPlayer bool   `json:"resolvedFromPlayer,omitempty"`
}

// SearchResult is the response to a SearchQuery. Links are ordered best first.
type SearchResult struct {
	Query     SearchQuery    `json:"query"`
	Links     []BoxScoreLink `json:"links"`
	MatchInfo MatchInfo      `json:"matchInfo"`
}

// PlayerTeam is the output of a player to team lookup.
type PlayerTeam struct {
	PlayerName string `json:"playerName"`
	TeamName   string `json:"teamName"`
	League     string `json:"league"`
}
