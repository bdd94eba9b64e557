// Package config resolves one immutable run configuration from the
// command line, the environment, and an optional YAML file. Precedence
// is explicit: positional argument > environment variable > config
// file > default.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

type Config struct {
	Target   Target    `yaml:"target"`
	Email    *Email    `yaml:"email"`
	Telegram *Telegram `yaml:"telegram"`
	Twilio   *Twilio   `yaml:"twilio"`
	Services []Service `yaml:"services"`

	// Template overrides the alert body; Sprig functions available.
	Template string `yaml:"template"`

	// AppendURL adds the checked page URL to the alert text.
	AppendURL bool `yaml:"append_url"`

	// StrictDelivery makes the process exit nonzero when every
	// delivery attempt failed.
	StrictDelivery bool `yaml:"strict_delivery"`

	LogFile string `yaml:"log_file"`
}

// Target is the page check: one URL, one selector, one expected
// literal.
type Target struct {
	URL      string `yaml:"url" validate:"required,url"`
	Selector string `yaml:"selector" validate:"required"`
	Expected string `yaml:"expected"`

	// Timeout bounds the page fetch, in seconds.
	Timeout int `yaml:"timeout" validate:"gte=0"`

	// Browser switches the fetch to headless Chromium.
	Browser bool `yaml:"browser"`
}

// Duration returns the fetch timeout, defaulting to 30s.
func (t Target) Duration() time.Duration {
	if t.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.Timeout) * time.Second
}

// Email configures the email-to-SMS gateway channel.
type Email struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	From        string `yaml:"from" validate:"required,email"`
	AppPassword string `yaml:"app_password" validate:"required"`

	// Recipients is a comma-separated "number:gatewayHost" list.
	Recipients string `yaml:"recipients"`
}

// Telegram configures the bot API channel.
type Telegram struct {
	BotToken string `yaml:"bot_token" validate:"required"`

	// ChatIDs is a comma-separated chat id list.
	ChatIDs string `yaml:"chat_ids" validate:"required"`
}

// Twilio configures the SMS API channel.
type Twilio struct {
	AccountSID string `yaml:"account_sid" validate:"required"`
	AuthToken  string `yaml:"auth_token" validate:"required"`
	From       string `yaml:"from" validate:"required"`

	// To is a comma-separated destination number list.
	To string `yaml:"to" validate:"required"`
}

// Service is a generic Shoutrrr channel: any service URL its router
// understands, with optional per-service params.
type Service struct {
	URL    string            `yaml:"url" validate:"required"`
	Params map[string]string `yaml:"params"`
}

// Load reads a YAML config file, expanding ${VAR} references from the
// environment first so secrets can stay out of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the assembled config. Channel groups are
// all-or-nothing: a half-specified credential set is a configuration
// fault, not a channel to silently skip.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config: field %q fails rule %q", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
