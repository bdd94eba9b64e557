package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exampleConfig = `# pagewatch configuration. Credentials may be inlined, referenced from
# the environment with ${VAR}, or supplied per-run on the command line
# (argument > environment > this file).
target:
  url: https://example.com/item
  selector: "#price"
  expected: "$19.99"
  timeout: 30
  browser: false

# Uncomment the channels you use. Each group is all-or-nothing.
#email:
#  from: you@gmail.com
#  app_password: ${PAGEWATCH_EMAIL_APP_PASSWORD}
#  recipients: "15551234567:vtext.com,15557654321:tmomail.net"
#telegram:
#  bot_token: ${TELEGRAM_BOT_TOKEN}
#  chat_ids: "-1001234567890"
#twilio:
#  account_sid: ${TWILIO_ACCOUNT_SID}
#  auth_token: ${TWILIO_AUTH_TOKEN}
#  from: "+15550001111"
#  to: "+15552223333"
#services:
#  - url: slack://token-a/token-b/token-c

# template: "The webpage has changed! Expected: {{.Expected}} | Found: {{.Observed}}"
append_url: true
strict_delivery: false
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, not overwriting", path)
		}

		if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
