package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authpanel-cli",
	Short: "Authpanel CLI tool",
	Long: `Authpanel CLI runs the sign-in form rules outside the browser.

Available commands:
  validate    Check a value against a field's rule
  strength    Score a password the way the registration meter does

Use "authpanel-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
