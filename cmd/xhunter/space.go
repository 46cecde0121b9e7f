package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/x-hunter/internal/space"
)

var (
	spaceConfigPath  string
	spaceDescription string
)

func init() {
	spaceCmd.Flags().StringVar(&spaceConfigPath, "config", "", "YAML file with broadcast overrides")
	spaceCmd.Flags().StringVar(&spaceDescription, "description", "", "Space description (overrides the config file)")
}

var spaceCmd = &cobra.Command{
	Use:   "space",
	Short: "Create a live-audio Space",
	Long: `Create a live-audio Space and print its id, share URL and status as JSON.

Examples:
  # Create a Space with defaults
  xhunter space --description "Weekly Go sync"

  # Create a Space from an overrides file
  xhunter space --config space.yaml`,
	Args: cobra.NoArgs,
	RunE: runSpace,
}

func runSpace(cmd *cobra.Command, args []string) error {
	overrides := &space.Overrides{}
	if spaceConfigPath != "" {
		o, err := space.LoadOverrides(spaceConfigPath)
		if err != nil {
			return err
		}
		overrides = o
	}
	if cmd.Flags().Changed("description") {
		overrides.Description = &spaceDescription
	}

	sess, err := appConfig.NewSession()
	if err != nil {
		return err
	}
	if !sess.IsLoggedIn() {
		return fmt.Errorf("cookies in %s do not hold a logged-in session", appConfig.CookiesPath)
	}

	b, err := space.NewHandshake(appConfig.NewTransport()).Create(cmd.Context(), sess, overrides)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
