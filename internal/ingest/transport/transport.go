package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// UserAgent is sent on every outbound request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout bounds each outbound call.
const DefaultTimeout = 15 * time.Second

// Transport kinds selectable through configuration.
const (
	KindHTTP    = "http"
	KindCurl    = "curl"
	KindBrowser = "browser"
)

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrUnknownKind is returned by New for an unsupported transport name.
	ErrUnknownKind = errors.New("unknown transport")
)

// Fetcher retrieves the raw body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// New builds a fetcher by kind.
func New(kind string, timeout time.Duration, logger *zap.Logger) (Fetcher, error) {
	switch kind {
	case "", KindHTTP:
		return NewHTTP(timeout, logger), nil
	case KindCurl:
		return NewCurl(timeout, logger), nil
	case KindBrowser:
		return NewBrowser(timeout, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// HTTP is the default net/http fetcher.
type HTTP struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTP creates an HTTP fetcher with the given per-request timeout.
func NewHTTP(timeout time.Duration, logger *zap.Logger) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTP{
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("http-fetch"),
	}
}

// Fetch GETs url and returns the body of a 2xx response.
func (h *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.logger.Debug("non-2xx response",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w %d from %s", ErrStatus, resp.StatusCode, url)
	}

	return body, nil
}

// Snippet returns at most n bytes of body for log messages.
func Snippet(body []byte, n int) string {
	if len(body) > n {
		return string(body[:n])
	}
	return string(body)
}

// Host returns the host of rawURL for labelling, or "unknown".
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
