// Package reference finds direct box score pages on the Sports-Reference
// sites by scraping their per-date box score index.
package reference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
	"github.com/fortuna/boxfinder/internal/ingest/transport"
	"github.com/fortuna/boxfinder/internal/league"
	"github.com/fortuna/boxfinder/internal/reconciliation"
)

var (
	// ErrUnsupported is returned for leagues without a reference date index.
	ErrUnsupported = errors.New("league has no reference index")
	// ErrNotFound means the index had no box score for the home team.
	ErrNotFound = errors.New("box score not listed")
)

// Scraper reads Sports-Reference index pages.
type Scraper struct {
	fetcher transport.Fetcher
	logger  *zap.Logger
}

func NewScraper(fetcher transport.Fetcher, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = transport.NewHTTP(transport.DefaultTimeout, logger)
	}
	return &Scraper{fetcher: fetcher, logger: logger.Named("reference-scraper")}
}

// FindBoxScore returns the absolute URL of the game's box score page. Box
// score pages are keyed by date and home team code, e.g.
// /boxscores/202401150LAL.html or /boxes/LAN/LAN202401150.shtml.
func (s *Scraper) FindBoxScore(ctx context.Context, game domain.GameInfo) (string, error) {
	l, ok := league.Get(game.League)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, game.League)
	}

	date, err := time.Parse(domain.DateLayout, game.GameDate)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", game.GameDate, err)
	}

	indexURL := l.ReferenceIndexURL(date)
	if indexURL == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, l.ID)
	}

	body, err := s.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	code := reconciliation.ReferenceAbbreviation(l.ID, game.HomeTeamAbbr)
	stamp := date.Format("20060102")

	var href string
	doc.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		h, _ := a.Attr("href")
		if !isBoxScore(h, stamp, code) {
			return true
		}
		href = h
		return false
	})

	if href == "" {
		return "", fmt.Errorf("%w: %s on %s", ErrNotFound, code, game.GameDate)
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("bad box score href %q: %w", href, err)
	}

	resolved := base.ResolveReference(ref).String()
	s.logger.Debug("found box score", zap.String("url", resolved))
	return resolved, nil
}

// isBoxScore reports whether href is the box score page for the home team
// code on stamp: /boxscores/{stamp}{n}{code}.html, or
// /boxes/{code}/{code}{stamp}{n}.shtml on Baseball-Reference.
func isBoxScore(href, stamp, code string) bool {
	u, err := url.Parse(href)
	if err != nil || code == "" {
		return false
	}
	dir, file := path.Split(u.Path)

	switch {
	case strings.HasSuffix(dir, "/boxscores/"):
		rest, ok := strings.CutPrefix(file, stamp)
		if !ok || rest == "" {
			return false
		}
		if rest[0] >= '0' && rest[0] <= '9' {
			rest = rest[1:]
		}
		return strings.TrimSuffix(rest, path.Ext(rest)) == code
	case strings.HasSuffix(dir, "/boxes/"+code+"/"):
		rest, ok := strings.CutPrefix(file, code+stamp)
		if !ok {
			return false
		}
		rest = strings.TrimSuffix(rest, path.Ext(rest))
		return len(rest) == 1 && rest[0] >= '0' && rest[0] <= '9'
	}
	return false
}
