package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/authpanel/internal/forms"
)

var strengthJSON bool

var strengthCmd = &cobra.Command{
	Use:   "strength <password>",
	Short: "Score a password the way the registration meter does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := forms.Score(args[0])
		out := cmd.OutOrStdout()
		if strengthJSON {
			return json.NewEncoder(out).Encode(s)
		}
		fmt.Fprintf(out, "%s (%d/5, %s)\n", s.Label, s.Level, s.Width)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strengthCmd)
	strengthCmd.Flags().BoolVar(&strengthJSON, "json", false, "Print the meter descriptor as JSON")
}
