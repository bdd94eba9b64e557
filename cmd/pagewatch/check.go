package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/logging"
	"github.com/pagewatch/pagewatch/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check <url> <selector> <expected> [emailAppPassword smsRecipients botToken chatID]",
	Short: "Run the check once and notify on change",
	Long: "Fetches the URL, extracts the first element matching the CSS selector, and " +
		"compares its text to the expected literal. On a difference (or a vanished " +
		"element) every configured channel is notified, best-effort. Exit 0 when the " +
		"check ran, changed or not; exit 1 on a fault. The four trailing positionals " +
		"mirror the historical surface; environment variables and --config cover the rest.",
	Args: cobra.RangeArgs(3, 7),
	RunE: func(cmd *cobra.Command, posArgs []string) error {
		args := config.Args{
			URL:      posArgs[0],
			Selector: posArgs[1],
			Expected: posArgs[2],
		}
		optional := []*string{
			&args.EmailAppPassword,
			&args.SMSRecipients,
			&args.TelegramBotToken,
			&args.TelegramChatID,
		}
		for i, v := range posArgs[3:] {
			*optional[i] = v
		}

		args.ConfigPath, _ = cmd.Flags().GetString("config")
		args.LogFile, _ = cmd.Flags().GetString("log-file")
		args.Timeout, _ = cmd.Flags().GetInt("timeout")
		args.TimeoutSet = cmd.Flags().Changed("timeout")
		args.Browser, _ = cmd.Flags().GetBool("browser")
		args.BrowserSet = cmd.Flags().Changed("browser")
		args.Strict, _ = cmd.Flags().GetBool("strict-delivery")
		args.StrictSet = cmd.Flags().Changed("strict-delivery")

		cfg, err := config.Resolve(args)
		if err != nil {
			reportFatal(args.LogFile, err)
			os.Exit(1)
		}

		logger, closeLog, err := logging.Setup(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer closeLog()

		r := runner.New(cfg, logger)
		result := r.Run(context.Background())
		printResult(result)

		if result.Err != nil {
			os.Exit(1)
		}
		if cfg.StrictDelivery && result.AllDeliveriesFailed() {
			logger.Error("every delivery attempt failed", "attempted", len(result.Outcomes))
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Int("timeout", 30, "page fetch timeout in seconds")
	checkCmd.Flags().String("log-file", "", "log file path (default: pagewatch.log beside the executable)")
	checkCmd.Flags().String("config", "", "YAML config file path")
	checkCmd.Flags().Bool("browser", false, "fetch with a headless browser (JavaScript and cookies enabled)")
	checkCmd.Flags().Bool("strict-delivery", false, "exit 1 when every delivery attempt failed")
	rootCmd.AddCommand(checkCmd)
}

// reportFatal routes a pre-run fault through the observability sink so
// it lands in the log file, falling back to stderr when even the sink
// cannot be built.
func reportFatal(logFile string, err error) {
	logger, closeLog, lerr := logging.Setup(logFile)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	defer closeLog()
	logger.Error("configuration error", "error", err)
}

func printResult(r runner.Result) {
	okMark, failMark := "OK", "FAIL"
	if isatty.IsTerminal(os.Stdout.Fd()) {
		okMark, failMark = "✓", "✗"
	}

	if r.Err != nil {
		fmt.Printf("%s %s\n", failMark, r.URL)
		fmt.Printf("  Error (%s): %s\n", r.ErrStage, r.Err)
		return
	}

	fmt.Printf("%s %s\n", okMark, r.URL)
	if !r.Changed {
		fmt.Printf("  Unchanged: %q\n", r.Verdict.Expected)
		return
	}

	fmt.Printf("  Changed: expected %q, found %q\n", r.Verdict.Expected, r.Verdict.Observed)
	for _, o := range r.Outcomes {
		if o.Success {
			fmt.Printf("  Notified: %s (%s)\n", o.Channel, o.Recipient)
		} else {
			fmt.Printf("  Failed: %s (%s): %s\n", o.Channel, o.Recipient, o.Err)
		}
	}
}
