package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearChannelEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvTwilioAccountSID, EnvTwilioAuthToken, EnvTwilioFromNumber, EnvTwilioToNumbers,
		EnvEmailFrom, EnvEmailAppPassword, EnvSMSRecipients,
		EnvTelegramBotToken, EnvTelegramChatID,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func baseArgs() Args {
	return Args{
		URL:      "https://example.com/item",
		Selector: "#price",
		Expected: "$19.99",
	}
}

func TestResolve_ArgsOnly(t *testing.T) {
	clearChannelEnv(t)

	cfg, err := Resolve(baseArgs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.URL != "https://example.com/item" || cfg.Target.Selector != "#price" {
		t.Errorf("target = %+v", cfg.Target)
	}
	if cfg.Target.Duration() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s default", cfg.Target.Duration())
	}
	if cfg.Email != nil || cfg.Telegram != nil || cfg.Twilio != nil {
		t.Error("no channels should be configured")
	}
}

func TestResolve_EnvTelegram(t *testing.T) {
	clearChannelEnv(t)
	t.Setenv(EnvTelegramBotToken, "tok")
	t.Setenv(EnvTelegramChatID, "-100")

	cfg, err := Resolve(baseArgs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram == nil || cfg.Telegram.BotToken != "tok" || cfg.Telegram.ChatIDs != "-100" {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
}

func TestResolve_ArgOverridesEnv(t *testing.T) {
	clearChannelEnv(t)
	t.Setenv(EnvTelegramBotToken, "env-tok")
	t.Setenv(EnvTelegramChatID, "env-chat")

	args := baseArgs()
	args.TelegramBotToken = "arg-tok"
	args.TelegramChatID = "arg-chat"

	cfg, err := Resolve(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "arg-tok" || cfg.Telegram.ChatIDs != "arg-chat" {
		t.Errorf("telegram = %+v, explicit argument must override environment", cfg.Telegram)
	}
}

func TestResolve_IncompleteTwilioIsFatal(t *testing.T) {
	clearChannelEnv(t)
	t.Setenv(EnvTwilioAccountSID, "AC123")
	// token/from/to missing

	if _, err := Resolve(baseArgs()); err == nil {
		t.Fatal("expected configuration error for half-specified Twilio credentials")
	}
}

func TestResolve_MissingURL(t *testing.T) {
	clearChannelEnv(t)
	if _, err := Resolve(Args{Selector: "#p", Expected: "x"}); err == nil {
		t.Fatal("expected error for missing url")
	}
}

func TestResolve_ConfigFileAndEnvExpansion(t *testing.T) {
	clearChannelEnv(t)
	t.Setenv("TEST_BOT_TOKEN", "secret-from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `target:
  url: https://example.com/page
  selector: "#price"
  expected: "$19.99"
  timeout: 10
telegram:
  bot_token: ${TEST_BOT_TOKEN}
  chat_ids: "42"
strict_delivery: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(Args{ConfigPath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "secret-from-env" {
		t.Errorf("bot_token = %q, want env-expanded value", cfg.Telegram.BotToken)
	}
	if cfg.Target.Duration() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s from file", cfg.Target.Duration())
	}
	if !cfg.StrictDelivery {
		t.Error("strict_delivery should come from the file")
	}
}

func TestResolve_ArgOverridesFile(t *testing.T) {
	clearChannelEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `target:
  url: https://example.com/file
  selector: ".from-file"
  expected: "file"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	args := baseArgs()
	args.ConfigPath = path
	cfg, err := Resolve(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.URL != "https://example.com/item" || cfg.Target.Selector != "#price" {
		t.Errorf("target = %+v, positional args must override the file", cfg.Target)
	}
}
