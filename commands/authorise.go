package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var authoriseCmd = &cobra.Command{
	Use:       "authorise {google|disk}",
	Short:     "Runs the interactive browser authorisation for a backend and caches the tokens",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"google", "disk"},
	Example: `  sheetkit authorise google
  sheetkit authorise disk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doAuthorise(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(authoriseCmd)
}

func doAuthorise(ctx context.Context, service string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	switch service {
	case "google":
		for _, scope := range []string{SHEETS, DRIVE} {
			if _, err := authorize(conf.Google.Credentials, scope, conf.Google.Tokens); err != nil {
				return fmt.Errorf("authorisation error (%v)", err)
			}
		}

		infof("authorised for Google Sheets")

	case "disk":
		client, err := diskClient()
		if err != nil {
			return err
		}

		if err := client.Authenticate(ctx); err != nil {
			return fmt.Errorf("authorisation error (%v)", err)
		}

		infof("authorised for the cloud drive")

	default:
		return fmt.Errorf("unknown service '%s' - expected 'google' or 'disk'", service)
	}

	return nil
}
