package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/authpanel/internal/forms"
)

var errInvalidValue = errors.New("value is invalid")

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <field> <value>",
	Short: "Check a value against a field's rule",
	Long: `Runs the same rule the sign-in page applies to email, password or fullname.
Exits non-zero when the value is invalid.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := forms.FieldName(args[0])
		if !knownField(name) {
			return fmt.Errorf("%w: %q", forms.ErrUnknownField, args[0])
		}

		label := cases.Title(language.English).String(string(name))
		if forms.NewValidator().Validate(name, args[1]) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", label)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid (%s)\n", label, forms.ErrorText(name))
		return errInvalidValue
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func knownField(name forms.FieldName) bool {
	switch name {
	case forms.Email, forms.Password, forms.FullName:
		return true
	}
	return false
}
