package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Args carries everything taken from the command line. Empty strings
// mean "not given"; the *Set booleans distinguish an explicit flag
// from its zero value.
type Args struct {
	URL      string
	Selector string
	Expected string

	// Optional trailing positionals, matching the historical surface.
	EmailAppPassword string
	SMSRecipients    string
	TelegramBotToken string
	TelegramChatID   string

	ConfigPath string
	LogFile    string

	Timeout    int
	TimeoutSet bool

	Browser    bool
	BrowserSet bool

	Strict    bool
	StrictSet bool
}

// Environment variable names. The Twilio ones follow the vendor
// convention; the rest are namespaced.
const (
	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "TWILIO_FROM_NUMBER"
	EnvTwilioToNumbers  = "TWILIO_TO_NUMBERS"

	EnvEmailFrom        = "PAGEWATCH_EMAIL_FROM"
	EnvEmailAppPassword = "PAGEWATCH_EMAIL_APP_PASSWORD"
	EnvSMSRecipients    = "PAGEWATCH_SMS_RECIPIENTS"

	EnvTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID   = "TELEGRAM_CHAT_ID"
)

// Resolve assembles the run configuration. A .env file beside the
// process is honored; real environment variables win over it, a config
// file sits below the environment, and explicit arguments override
// everything.
func Resolve(args Args) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if args.ConfigPath != "" {
		loaded, err := Load(args.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnv(cfg)
	applyArgs(cfg, args)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays environment-sourced credentials onto the config.
// A channel group materializes as soon as one of its variables is set;
// validation then insists the group is complete.
func applyEnv(cfg *Config) {
	if anyEnv(EnvTwilioAccountSID, EnvTwilioAuthToken, EnvTwilioFromNumber, EnvTwilioToNumbers) {
		if cfg.Twilio == nil {
			cfg.Twilio = &Twilio{}
		}
		setEnv(&cfg.Twilio.AccountSID, EnvTwilioAccountSID)
		setEnv(&cfg.Twilio.AuthToken, EnvTwilioAuthToken)
		setEnv(&cfg.Twilio.From, EnvTwilioFromNumber)
		setEnv(&cfg.Twilio.To, EnvTwilioToNumbers)
	}

	if anyEnv(EnvEmailFrom, EnvEmailAppPassword, EnvSMSRecipients) {
		if cfg.Email == nil {
			cfg.Email = &Email{}
		}
		setEnv(&cfg.Email.From, EnvEmailFrom)
		setEnv(&cfg.Email.AppPassword, EnvEmailAppPassword)
		setEnv(&cfg.Email.Recipients, EnvSMSRecipients)
	}

	if anyEnv(EnvTelegramBotToken, EnvTelegramChatID) {
		if cfg.Telegram == nil {
			cfg.Telegram = &Telegram{}
		}
		setEnv(&cfg.Telegram.BotToken, EnvTelegramBotToken)
		setEnv(&cfg.Telegram.ChatIDs, EnvTelegramChatID)
	}
}

func applyArgs(cfg *Config, args Args) {
	if args.URL != "" {
		cfg.Target.URL = args.URL
	}
	if args.Selector != "" {
		cfg.Target.Selector = args.Selector
	}
	if args.Expected != "" {
		cfg.Target.Expected = args.Expected
	}
	if args.TimeoutSet {
		cfg.Target.Timeout = args.Timeout
	}
	if args.BrowserSet {
		cfg.Target.Browser = args.Browser
	}
	if args.StrictSet {
		cfg.StrictDelivery = args.Strict
	}
	if args.LogFile != "" {
		cfg.LogFile = args.LogFile
	}

	if args.EmailAppPassword != "" || args.SMSRecipients != "" {
		if cfg.Email == nil {
			cfg.Email = &Email{}
		}
		if args.EmailAppPassword != "" {
			cfg.Email.AppPassword = args.EmailAppPassword
		}
		if args.SMSRecipients != "" {
			cfg.Email.Recipients = args.SMSRecipients
		}
	}

	if args.TelegramBotToken != "" || args.TelegramChatID != "" {
		if cfg.Telegram == nil {
			cfg.Telegram = &Telegram{}
		}
		if args.TelegramBotToken != "" {
			cfg.Telegram.BotToken = args.TelegramBotToken
		}
		if args.TelegramChatID != "" {
			cfg.Telegram.ChatIDs = args.TelegramChatID
		}
	}
}

func anyEnv(keys ...string) bool {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
