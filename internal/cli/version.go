package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cg3io/prior/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				fmt.Fprintln(a.stdout, buildVersion)
				return nil
			}

			userAgent := branding.UserAgent(buildVersion)
			if asJSON {
				info := map[string]string{
					"version":   buildVersion,
					"commit":    buildCommit,
					"date":      buildDate,
					"userAgent": userAgent,
					"apiUrl":    a.client.BaseURL(),
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(a.stdout, string(out))
				return nil
			}

			fmt.Fprintf(a.stdout, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
			fmt.Fprintf(a.stdout, "user agent: %s\napi: %s\n", userAgent, a.client.BaseURL())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}
