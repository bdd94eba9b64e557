package fetch

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// settleDelay gives page scripts a moment to render dynamic content
// after the load event.
const settleDelay = 2 * time.Second

// BrowserFetcher loads the page in a headless Chromium with JavaScript
// and cookies enabled, so sites that refuse plain HTTP clients still
// render. One browser is launched per Fetch and torn down after.
type BrowserFetcher struct {
	ua string
}

// NewBrowser creates a BrowserFetcher.
func NewBrowser() *BrowserFetcher {
	return &BrowserFetcher{ua: defaultUserAgent}
}

// Fetch navigates to the page, waits for load plus a settle delay, and
// returns the rendered HTML. The caller's context bounds the whole
// visit, launch included.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	l := launcher.New().Headless(true)
	defer l.Cleanup()

	wsURL, err := l.Launch()
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}

	browser := rod.New().ControlURL(wsURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	defer browser.Close()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.ua}); err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width: 1280, Height: 720, DeviceScaleFactor: 1,
	}); err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}

	if err := page.Navigate(pageURL); err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	if err := page.WaitLoad(); err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}

	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return "", &Error{URL: pageURL, Cause: ctx.Err()}
	}

	html, err := page.HTML()
	if err != nil {
		return "", &Error{URL: pageURL, Cause: err}
	}
	return html, nil
}
