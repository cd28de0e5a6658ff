package players

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

const SearchURL = "https://site.web.api.espn.com/apis/common/v3/search"

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	DisplayName       string `json:"displayName"`
	League            string `json:"league"`
	TeamRelationships []struct {
		DisplayName string `json:"displayName"`
	} `json:"teamRelationships"`
}

// ESPNSearch finds a player's current team through the ESPN search API.
// ESPN only knows the current roster, so the date is ignored.
type ESPNSearch struct {
	baseURL string
	fetcher transport.Fetcher
	logger  *zap.Logger
}

func NewESPNSearch(baseURL string, fetcher transport.Fetcher, logger *zap.Logger) *ESPNSearch {
	if baseURL == "" {
		baseURL = SearchURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &ESPNSearch{baseURL: baseURL, fetcher: fetcher, logger: logger.Named("espn-search")}
}

func (s *ESPNSearch) LookupTeam(ctx context.Context, playerName, isoDate string) (*domain.PlayerTeam, error) {
	params := url.Values{}
	params.Set("query", playerName)
	params.Set("type", "player")
	params.Set("limit", "5")

	body, err := s.fetcher.Fetch(ctx, s.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w (body: %s)", err, transport.Snippet(body, 200))
	}

	want := reconciliation.Normalize(playerName)
	var fallback *domain.PlayerTeam
	for _, item := range resp.Items {
		if item.Type != "" && item.Type != "player" {
			continue
		}
		if len(item.TeamRelationships) == 0 || item.TeamRelationships[0].DisplayName == "" {
			continue
		}
		if _, ok := league.Get(item.League); !ok {
			continue
		}

		pt := &domain.PlayerTeam{
			PlayerName: item.DisplayName,
			TeamName:   item.TeamRelationships[0].DisplayName,
			League:     strings.ToLower(item.League),
		}
		if reconciliation.Normalize(item.DisplayName) == want {
			return pt, nil
		}
		if fallback == nil {
			fallback = pt
		}
	}

	if fallback != nil {
		s.logger.Debug("no exact name hit, using top result",
			zap.String("query", playerName),
			zap.String("player", fallback.PlayerName),
		)
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, playerName)
}
