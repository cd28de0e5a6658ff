package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Browser loads URLs in headless Chrome and returns the rendered document.
// Slow, but gets past providers that block non-browser clients.
type Browser struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewBrowser creates a chromedp-backed fetcher. Chrome is started per request.
func NewBrowser(timeout time.Duration, logger *zap.Logger) *Browser {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		timeout: timeout,
		logger:  logger.Named("browser-fetch"),
	}
}

// Fetch navigates to url and returns the rendered page as HTML, or the raw
// payload when Chrome wrapped a JSON/text response in its viewer.
func (b *Browser) Fetch(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, b.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp error: %w", err)
	}
	if html == "" {
		return nil, fmt.Errorf("empty page returned for %s", url)
	}

	body := RenderedBody(html)
	b.logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// RenderedBody unwraps a document Chrome built around a non-HTML response
// (a lone <pre> holding the payload, optionally beside the JSON viewer
// container). Any other document is returned as-is.
func RenderedBody(html string) []byte {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []byte(html)
	}

	children := doc.Find("body").Children()
	pre := children.Filter("pre")
	if pre.Length() != 1 || children.Not("pre, div.json-formatter-container").Length() != 0 {
		return []byte(html)
	}
	return []byte(pre.Text())
}
