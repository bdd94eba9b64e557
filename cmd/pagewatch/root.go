package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagewatch",
	Short: "Single-shot website-change watcher",
	Long: "Pagewatch fetches a page, extracts the text of one CSS-selected element, " +
		"compares it to an expected literal, and notifies every configured channel " +
		"when it differs. One check per invocation; scheduling is your cron's job.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
