// Package runner orchestrates one check: fetch → extract → detect →
// notify. A fetch failure aborts before detection; an unreadable page
// is never reported as a changed page.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/detect"
	"github.com/pagewatch/pagewatch/internal/extract"
	"github.com/pagewatch/pagewatch/internal/fetch"
	"github.com/pagewatch/pagewatch/internal/notify"
)

// Runner runs the pipeline for one configured target.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	fetcher  fetch.Fetcher
	channels []notify.Channel
}

// New creates a Runner with the fetcher and channels the config calls
// for.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	var fetcher fetch.Fetcher
	if cfg.Target.Browser {
		fetcher = fetch.NewBrowser()
	} else {
		fetcher = fetch.NewHTTP(cfg.Target.Duration())
	}
	return NewWith(cfg, logger, fetcher, BuildChannels(cfg, logger))
}

// NewWith creates a Runner with explicit collaborators.
func NewWith(cfg *config.Config, logger *slog.Logger, fetcher fetch.Fetcher, channels []notify.Channel) *Runner {
	return &Runner{cfg: cfg, logger: logger, fetcher: fetcher, channels: channels}
}

// BuildChannels assembles the configured channel adapters. Malformed
// gateway recipients are warned about and skipped individually.
func BuildChannels(cfg *config.Config, logger *slog.Logger) []notify.Channel {
	var channels []notify.Channel

	if e := cfg.Email; e != nil {
		valid, malformed := notify.ParseGatewayRecipients(e.Recipients)
		for _, bad := range malformed {
			logger.Warn("skipping malformed sms recipient", "channel", "email", "entry", bad)
		}
		channels = append(channels, notify.NewEmailChannel(e.Host, e.Port, e.From, e.AppPassword, valid))
	}

	if t := cfg.Telegram; t != nil {
		channels = append(channels, notify.NewTelegramChannel(t.BotToken, notify.ParseList(t.ChatIDs)))
	}

	if t := cfg.Twilio; t != nil {
		channels = append(channels, notify.NewTwilioChannel(t.AccountSID, t.AuthToken, t.From, notify.ParseList(t.To)))
	}

	for _, s := range cfg.Services {
		channels = append(channels, notify.NewShoutrrrChannel(s.URL, s.Params))
	}

	return channels
}

// Run executes the pipeline once.
func (r *Runner) Run(ctx context.Context) Result {
	target := r.cfg.Target
	log := r.logger.With("url", target.URL, "selector", target.Selector)
	start := time.Now()

	result := Result{URL: target.URL, Selector: target.Selector}

	log.Info("checking page")

	fetchCtx, cancel := context.WithTimeout(ctx, target.Duration())
	defer cancel()

	html, err := r.fetcher.Fetch(fetchCtx, target.URL)
	if err != nil {
		result.Err = err
		result.ErrStage = "fetch"
		result.Duration = time.Since(start)
		log.Error("fetch failed", "error", err)
		return result
	}

	res, err := extract.FirstText(html, target.Selector)
	if err != nil {
		result.Err = err
		result.ErrStage = "extract"
		result.Duration = time.Since(start)
		log.Error("extract failed", "error", err)
		return result
	}
	if !res.Found() {
		log.Warn("no element found for selector")
	}

	verdict := detect.Detect(res, target.Expected)
	result.Verdict = verdict
	result.Changed = verdict.Changed

	if !verdict.Changed {
		result.Duration = time.Since(start)
		log.Info("text matches expected", "expected", verdict.Expected)
		return result
	}

	log.Info("text differs", "expected", verdict.Expected, "found", verdict.Observed)

	refURL := ""
	if r.cfg.AppendURL {
		refURL = target.URL
	}
	msg, err := notify.BuildMessage(r.cfg.Template, verdict, refURL)
	if err != nil {
		result.Err = err
		result.ErrStage = "template"
		result.Duration = time.Since(start)
		log.Error("building message failed", "error", err)
		return result
	}

	if len(r.channels) == 0 {
		log.Warn("change detected but no notification channels configured")
	}

	router := notify.NewRouter(r.logger)
	result.Outcomes = router.Dispatch(ctx, msg, r.channels)
	result.Duration = time.Since(start)

	log.Info("check completed",
		"changed", result.Changed,
		"delivered", result.Delivered(),
		"attempted", len(result.Outcomes),
		"duration", result.Duration)

	return result
}
